package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Role classifies a principal. Customer accounts exist in the backend but are
// not allowed into this console.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleVendor   Role = "Vendor"
	RoleCustomer Role = "Customer"
)

// User is the current-user record returned by GetUserInfo.
type User struct {
	UserID       int64  `json:"userId"`
	UserRole     Role   `json:"userRole"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	ImageURL     string `json:"imageUrl"`
	FacilityName string `json:"facilityName"`
}

// UserPatch carries fields to merge into an in-memory user record after a
// profile edit. Nil fields are left untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	PhoneNumber  *string
	ImageURL     *string
	FacilityName *string
}

// Credentials are the login inputs. Identifier accepts email, username or
// phone.
type Credentials struct {
	Identifier string
	Password   string
}

// LoginResponse is the credential-exchange payload.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       int64  `json:"userId"`
	Message      string `json:"message"`
}

// StatusResponse is the generic success/message payload several auth
// endpoints return.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login exchanges credentials for a token pair. It does not persist anything;
// the session controller owns that decision.
func (c *Client) Login(ctx context.Context, creds Credentials, rememberMe bool) (*LoginResponse, error) {
	// "Identifer" is the backend's field name.
	body := struct {
		Identifier string `json:"Identifer"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}{creds.Identifier, creds.Password, rememberMe}

	var out LoginResponse
	if err := c.post(ctx, loginPath, nil, body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetUserInfo returns the current user for the stored bearer token.
func (c *Client) GetUserInfo(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, userInfoPath, nil, &out); err != nil {
		return nil, err
	}

	return &out.User, nil
}

// Logout invalidates the refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.post(ctx, logoutPath(refreshToken), nil, nil, nil)
}

// Facility is the vendor's business record submitted on registration.
type Facility struct {
	Name                        string
	CommercialRegister          string
	Country                     string
	City                        string
	Phone                       string
	Address                     string
	Email                       string
	Website                     string
	Activities                  []string
	Keywords                    []string
	LogoPath                    string
	CommercialRegisterImagePath string
}

// RegisterInput is the vendor self-registration form.
type RegisterInput struct {
	Username        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
	ImagePath       string
	Facility        Facility
}

// RegisterResponse is the registration outcome; the user still has to verify
// via OTP before logging in.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

// RegisterVendor submits a vendor registration as multipart form data.
// "Faclity" is the backend's field prefix.
func (c *Client) RegisterVendor(ctx context.Context, input RegisterInput) (*RegisterResponse, error) {
	build := func(w *multipart.Writer) error {
		fields := map[string]string{
			"Username":                   input.Username,
			"Email":                      input.Email,
			"PhoneNumber":                input.PhoneNumber,
			"Password":                   input.Password,
			"ConfirmPassword":            input.ConfirmPassword,
			"Faclity.Name":               input.Facility.Name,
			"Faclity.CommercialRegister": input.Facility.CommercialRegister,
			"Faclity.Country":            input.Facility.Country,
			"Faclity.City":               input.Facility.City,
			"Faclity.Phone":              input.Facility.Phone,
			"Faclity.Address":            input.Facility.Address,
			"Faclity.Email":              input.Facility.Email,
			"Faclity.Website":            input.Facility.Website,
		}
		for name, value := range fields {
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}

		for _, activity := range input.Facility.Activities {
			if err := w.WriteField("Faclity.Activities", activity); err != nil {
				return err
			}
		}
		for _, keyword := range input.Facility.Keywords {
			if err := w.WriteField("Faclity.Keywords", keyword); err != nil {
				return err
			}
		}

		if err := attachFile(w, "Image", input.ImagePath); err != nil {
			return err
		}
		if err := attachFile(w, "Faclity.Logo", input.Facility.LogoPath); err != nil {
			return err
		}
		return attachFile(w, "Faclity.CommercialRegisterImage", input.Facility.CommercialRegisterImagePath)
	}

	var out RegisterResponse
	if err := c.postMultipart(ctx, http.MethodPost, registerVendorPath, build, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SendPasswordOTP starts the password recovery flow.
func (c *Client) SendPasswordOTP(ctx context.Context, identifier string) (*StatusResponse, error) {
	query := url.Values{"Identifier": {identifier}}

	var out StatusResponse
	if err := c.post(ctx, passwordSendOTPPath, query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// PasswordOTPResult carries the reset token issued on a verified OTP.
type PasswordOTPResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ResetToken string `json:"resetToken"`
}

// VerifyPasswordOTP exchanges a recovery OTP for a reset token.
func (c *Client) VerifyPasswordOTP(ctx context.Context, identifier, otp string) (*PasswordOTPResult, error) {
	// Query names follow the backend's spelling.
	query := url.Values{"identifer": {identifier}, "otp": {otp}}

	var out PasswordOTPResult
	if err := c.post(ctx, passwordVerifyOTPPath, query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, identifier, newPassword string) (*StatusResponse, error) {
	query := url.Values{"resetToken": {resetToken}, "identifer": {identifier}}
	body := struct {
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}{newPassword, newPassword}

	var out StatusResponse
	if err := c.post(ctx, passwordResetPath, query, body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// VerifyOTP confirms a registration OTP. Callers follow up with a session
// re-check once the backend has bound tokens.
func (c *Client) VerifyOTP(ctx context.Context, userID int64, otp string) (*StatusResponse, error) {
	query := url.Values{"userId": {strconv.FormatInt(userID, 10)}, "otp": {otp}}

	var out StatusResponse
	if err := c.post(ctx, verifyOTPPath, query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ResendOTP re-sends the registration OTP.
func (c *Client) ResendOTP(ctx context.Context, identifier string) (*StatusResponse, error) {
	query := url.Values{"Identifier": {identifier}}

	var out StatusResponse
	if err := c.post(ctx, resendOTPPath, query, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ValidateEmail checks email availability before registration.
func (c *Client) ValidateEmail(ctx context.Context, email string) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.get(ctx, validateEmailPath(email), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateUsername checks username availability before registration.
func (c *Client) ValidateUsername(ctx context.Context, username string) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.get(ctx, validateUsernamePath(username), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidatePhone checks phone availability before registration.
func (c *Client) ValidatePhone(ctx context.Context, phone string) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.get(ctx, validatePhonePath(phone), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// attachFile adds a file part when path is set.
func attachFile(w *multipart.Writer, field, path string) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", field, err)
	}
	defer f.Close()

	part, err := w.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to attach %s: %w", field, err)
	}

	return nil
}
