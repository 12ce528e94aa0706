package commands

import (
	"context"
	"fmt"
)

// LangCmd shows or changes the display language.
type LangCmd struct {
	Show LangShowCmd `cmd:"" default:"withargs" help:"Show the active language"`
	Set  LangSetCmd  `cmd:"" help:"Change the language"`
}

type LangShowCmd struct {
	ConnFlags
}

func (l *LangShowCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, l.ConnFlags)
	if err != nil {
		return err
	}

	direction := "LTR"
	if a.lang.IsRTL() {
		direction = "RTL"
	}
	fmt.Printf("%s (%s)\n", a.lang.Current(), direction)

	return nil
}

type LangSetCmd struct {
	ConnFlags
	Language string `arg:"" help:"Locale code" enum:"ar,en"`
}

func (l *LangSetCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, l.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.lang.Change(ctx, l.Language); err != nil {
		return fmt.Errorf("%s: %w", a.lang.T("language_failed", nil), err)
	}

	fmt.Println(a.lang.T("language_changed", nil))
	return nil
}
