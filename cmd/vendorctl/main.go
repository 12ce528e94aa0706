package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/tajerhq/vendorctl/cmd/vendorctl/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login     commands.LoginCmd     `cmd:"" help:"Log in to the dashboard"`
		Logout    commands.LogoutCmd    `cmd:"" help:"Log out and clear the local session"`
		Whoami    commands.WhoamiCmd    `cmd:"" help:"Show the current session"`
		Register  commands.RegisterCmd  `cmd:"" help:"Register a new vendor account"`
		Otp       commands.OtpCmd       `cmd:"" help:"Verify or resend a registration code"`
		Password  commands.PasswordCmd  `cmd:"" help:"Recover a forgotten password"`
		Dashboard commands.DashboardCmd `cmd:"" help:"Show dashboard figures"`
		Orders    commands.OrdersCmd    `cmd:"" help:"Browse and manage orders"`
		Offers    commands.OffersCmd    `cmd:"" help:"Create and manage offers"`
		Profile   commands.ProfileCmd   `cmd:"" help:"Show or edit the profile"`
		Lang      commands.LangCmd      `cmd:"" help:"Show or change the display language"`
		Debug     bool                  `help:"Enable debug mode."`
		Version   kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
