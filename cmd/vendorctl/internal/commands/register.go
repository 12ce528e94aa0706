package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/tajerhq/vendorctl/internal/api"
)

// RegisterCmd submits a vendor registration. The account still has to be
// verified with the emailed code before it can log in.
type RegisterCmd struct {
	ConnFlags
	Username        string `help:"Account username" required:""`
	Email           string `help:"Account email" required:""`
	Phone           string `help:"Account phone number" required:""`
	Password        string `help:"Password" env:"VENDORCTL_PASSWORD"`
	Image           string `help:"Path to a profile image" type:"existingfile"`
	FacilityName    string `help:"Facility name" required:""`
	FacilityCountry string `help:"Facility country" required:""`
	FacilityCity    string `help:"Facility city" required:""`
	FacilityPhone   string `help:"Facility phone"`
	FacilityAddress string `help:"Facility address"`
	FacilityEmail   string `help:"Facility email"`
	FacilityWebsite string `help:"Facility website"`
	Register        string `help:"Commercial register number" name:"commercial-register"`
	RegisterImage   string `help:"Path to the commercial register scan" name:"commercial-register-image" type:"existingfile"`
	Logo            string `help:"Path to the facility logo" type:"existingfile"`
	Activity        []string `help:"Facility activity (repeatable)"`
	Keyword         []string `help:"Search keyword (repeatable)"`
}

func (r *RegisterCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, r.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePublic(); err != nil {
		return err
	}

	if err := r.validate(ctx, a); err != nil {
		return err
	}

	password := r.Password
	if password == "" {
		password = prompt("Password")
	}
	confirmPassword := prompt("Confirm password")
	if password == "" || password != confirmPassword {
		return errors.New("passwords do not match")
	}

	resp, err := a.session.Register(ctx, api.RegisterInput{
		Username:        r.Username,
		Email:           r.Email,
		PhoneNumber:     r.Phone,
		Password:        password,
		ConfirmPassword: confirmPassword,
		ImagePath:       r.Image,
		Facility: api.Facility{
			Name:                        r.FacilityName,
			CommercialRegister:          r.Register,
			Country:                     r.FacilityCountry,
			City:                        r.FacilityCity,
			Phone:                       r.FacilityPhone,
			Address:                     r.FacilityAddress,
			Email:                       r.FacilityEmail,
			Website:                     r.FacilityWebsite,
			Activities:                  r.Activity,
			Keywords:                    r.Keyword,
			LogoPath:                    r.Logo,
			CommercialRegisterImagePath: r.RegisterImage,
		},
	})
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.IsValidation() {
			fmt.Println(a.lang.T("register_failed", nil))
			for field, messages := range apiErr.Fields {
				for _, msg := range messages {
					fmt.Printf("  %s: %s\n", field, msg)
				}
			}
			return errors.New(apiErr.Message)
		}
		return err
	}

	fmt.Println(a.lang.T("register_success", nil))
	fmt.Printf("Verify the code sent to %s:\n", r.Email)
	fmt.Printf("  vendorctl otp verify --user-id %d --code <CODE>\n", resp.UserID)

	return nil
}

// validate checks identifier availability before submitting the heavier
// multipart form.
func (r *RegisterCmd) validate(ctx context.Context, a *app) error {
	checks := []struct {
		name string
		call func() (*api.StatusResponse, error)
	}{
		{"email", func() (*api.StatusResponse, error) { return a.client.ValidateEmail(ctx, r.Email) }},
		{"username", func() (*api.StatusResponse, error) { return a.client.ValidateUsername(ctx, r.Username) }},
		{"phone", func() (*api.StatusResponse, error) { return a.client.ValidatePhone(ctx, r.Phone) }},
	}

	for _, check := range checks {
		resp, err := check.call()
		if err != nil {
			return fmt.Errorf("failed to validate %s: %w", check.name, err)
		}
		if !resp.Success {
			return fmt.Errorf("%s is not available: %s", check.name, resp.Message)
		}
	}

	return nil
}

// OtpCmd groups the registration verification flows.
type OtpCmd struct {
	Verify OtpVerifyCmd `cmd:"" help:"Verify a registration code"`
	Resend OtpResendCmd `cmd:"" help:"Re-send the registration code"`
}

type OtpVerifyCmd struct {
	ConnFlags
	UserID int64  `help:"User ID from registration" required:"" name:"user-id"`
	Code   string `help:"Verification code" required:""`
}

func (o *OtpVerifyCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	resp, err := a.client.VerifyOTP(ctx, o.UserID, o.Code)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("verification failed: %s", resp.Message)
	}

	// The backend may have bound tokens during verification.
	if err := a.session.RefreshAuth(ctx); err != nil {
		return err
	}

	fmt.Println(a.lang.T("otp_verified", nil))
	return nil
}

type OtpResendCmd struct {
	ConnFlags
	Identifier string `arg:"" help:"Email, username or phone"`
}

func (o *OtpResendCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, o.ConnFlags)
	if err != nil {
		return err
	}

	resp, err := a.client.ResendOTP(ctx, o.Identifier)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("failed to re-send code: %s", resp.Message)
	}

	fmt.Println(a.lang.T("otp_sent", nil))
	return nil
}
