package api

import (
	"context"
	"net/url"
)

// ChangeLanguage updates the account's language preference server-side.
// Callers treat failures as best-effort.
func (c *Client) ChangeLanguage(ctx context.Context, language string) error {
	query := url.Values{"language": {language}}
	return c.post(ctx, changeLanguagePath, query, nil, nil)
}
