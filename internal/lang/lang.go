// Package lang holds the locale state shared by the command layer: the
// current language, its text direction, and the translation lookup used for
// user-facing messages.
package lang

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Supported locale codes.
const (
	Arabic  = "ar"
	English = "en"
)

// ErrUnsupportedLanguage is returned for locale codes outside ar/en.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Syncer pushes the preference to the backend. Failures are best effort.
type Syncer interface {
	ChangeLanguage(ctx context.Context, language string) error
}

// Preferences persists the chosen locale locally.
type Preferences interface {
	Language() string
	SetLanguage(lang string) error
}

// Controller holds the current locale. Constructed once at startup from the
// persisted preference.
type Controller struct {
	mu      sync.RWMutex
	current string

	prefs  Preferences
	syncer Syncer
	log    zerolog.Logger
}

// New loads the persisted preference, defaulting to Arabic.
func New(prefs Preferences, syncer Syncer, log zerolog.Logger) *Controller {
	current := prefs.Language()
	if current != Arabic && current != English {
		current = Arabic
	}

	return &Controller{
		current: current,
		prefs:   prefs,
		syncer:  syncer,
		log:     log,
	}
}

// Current returns the active locale code.
func (c *Controller) Current() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// IsRTL reports whether the active locale renders right-to-left.
func (c *Controller) IsRTL() bool {
	return c.Current() == Arabic
}

// Change switches the locale: best-effort backend sync, then local persist.
// A backend failure is logged and swallowed — the local change still applies.
// No-op when the locale is unchanged.
func (c *Controller) Change(ctx context.Context, language string) error {
	if language != Arabic && language != English {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	if c.Current() == language {
		return nil
	}

	if c.syncer != nil {
		if err := c.syncer.ChangeLanguage(ctx, language); err != nil {
			c.log.Warn().Err(err).Msg("failed to update language on server")
		}
	}

	if err := c.prefs.SetLanguage(language); err != nil {
		return fmt.Errorf("failed to persist language: %w", err)
	}

	c.mu.Lock()
	c.current = language
	c.mu.Unlock()

	c.log.Info().Str("language", language).Msg("language changed")

	return nil
}

// T translates a key in the active locale, substituting {param} placeholders.
// Unknown keys fall back to the key itself.
func (c *Controller) T(key string, params map[string]string) string {
	return substitute(c.Translation(key, c.Current()), params)
}

// Translation looks up a key in a specific locale.
func (c *Controller) Translation(key, language string) string {
	table, ok := translations[language]
	if !ok {
		table = translations[Arabic]
	}
	if text, ok := table[key]; ok {
		return text
	}
	return key
}

func substitute(text string, params map[string]string) string {
	for name, value := range params {
		text = strings.ReplaceAll(text, "{"+name+"}", value)
	}
	return text
}
