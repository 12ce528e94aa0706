package commands

import (
	"context"
	"errors"
	"fmt"
)

// PasswordCmd groups the password recovery flow: send a code, verify it for a
// reset token, then set the new password.
type PasswordCmd struct {
	SendOtp PasswordSendOtpCmd `cmd:"" help:"Send a recovery code" name:"send-otp"`
	Verify  PasswordVerifyCmd  `cmd:"" help:"Exchange the code for a reset token"`
	Reset   PasswordResetCmd   `cmd:"" help:"Set a new password with a reset token"`
}

type PasswordSendOtpCmd struct {
	ConnFlags
	Identifier string `arg:"" help:"Email, username or phone"`
}

func (p *PasswordSendOtpCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, p.ConnFlags)
	if err != nil {
		return err
	}

	resp, err := a.client.SendPasswordOTP(ctx, p.Identifier)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("failed to send recovery code: %s", resp.Message)
	}

	fmt.Println(a.lang.T("otp_sent", nil))
	fmt.Printf("Next:\n  vendorctl password verify %s --code <CODE>\n", p.Identifier)

	return nil
}

type PasswordVerifyCmd struct {
	ConnFlags
	Identifier string `arg:"" help:"Email, username or phone"`
	Code       string `help:"Recovery code" required:""`
}

func (p *PasswordVerifyCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, p.ConnFlags)
	if err != nil {
		return err
	}

	result, err := a.client.VerifyPasswordOTP(ctx, p.Identifier, p.Code)
	if err != nil {
		return err
	}
	if !result.Success || result.ResetToken == "" {
		return fmt.Errorf("verification failed: %s", result.Message)
	}

	fmt.Println(a.lang.T("otp_verified", nil))
	fmt.Printf("Reset token: %s\n", result.ResetToken)
	fmt.Printf("Next:\n  vendorctl password reset %s --token %s\n", p.Identifier, result.ResetToken)

	return nil
}

type PasswordResetCmd struct {
	ConnFlags
	Identifier string `arg:"" help:"Email, username or phone"`
	Token      string `help:"Reset token from the verify step" required:""`
}

func (p *PasswordResetCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, p.ConnFlags)
	if err != nil {
		return err
	}

	newPassword := prompt("New password")
	confirmPassword := prompt("Confirm password")
	if newPassword == "" || newPassword != confirmPassword {
		return errors.New("passwords do not match")
	}

	resp, err := a.client.ResetPassword(ctx, p.Token, p.Identifier, newPassword)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("reset failed: %s", resp.Message)
	}

	fmt.Println(a.lang.T("password_reset", nil))
	return nil
}
