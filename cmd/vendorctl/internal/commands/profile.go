package commands

import (
	"context"
	"fmt"

	"github.com/tajerhq/vendorctl/internal/api"
)

// ProfileCmd shows and edits the account profile.
type ProfileCmd struct {
	Show   ProfileShowCmd   `cmd:"" default:"withargs" help:"Show the profile"`
	Update ProfileUpdateCmd `cmd:"" help:"Update profile fields"`
}

type ProfileShowCmd struct {
	ConnFlags
}

func (p *ProfileShowCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, p.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("profile"); err != nil {
		return err
	}

	profile, err := fetchProfile(ctx, a)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	table := newTable()
	fmt.Fprintf(table, "Username\t%s\n", profile.Username)
	fmt.Fprintf(table, "Email\t%s\n", profile.Email)
	fmt.Fprintf(table, "Phone\t%s\n", profile.PhoneNumber)
	if profile.FacilityName != "" {
		fmt.Fprintf(table, "Facility\t%s\n", profile.FacilityName)
		fmt.Fprintf(table, "City\t%s\n", profile.City)
		fmt.Fprintf(table, "Address\t%s\n", profile.Address)
		fmt.Fprintf(table, "Website\t%s\n", profile.Website)
		fmt.Fprintf(table, "Register\t%s\n", profile.CommercialRegister)
	}
	if profile.Description != "" {
		fmt.Fprintf(table, "About\t%s\n", profile.Description)
	}
	return table.Flush()
}

type ProfileUpdateCmd struct {
	ConnFlags
	Username     string `help:"New username"`
	Email        string `help:"New email"`
	Phone        string `help:"New phone number"`
	FacilityName string `help:"New facility name"`
	City         string `help:"New city"`
	Address      string `help:"New address"`
	Website      string `help:"New website"`
	Description  string `help:"New description"`
	Image        string `help:"New profile image" type:"existingfile"`
}

func (p *ProfileUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(ctx, globals, p.ConnFlags)
	if err != nil {
		return err
	}

	if err := a.requirePrivate("profile update"); err != nil {
		return err
	}

	update := api.ProfileUpdate{
		Username:     p.Username,
		Email:        p.Email,
		PhoneNumber:  p.Phone,
		FacilityName: p.FacilityName,
		City:         p.City,
		Address:      p.Address,
		Website:      p.Website,
		Description:  p.Description,
		ImagePath:    p.Image,
	}
	if update == (api.ProfileUpdate{}) {
		return fmt.Errorf("nothing to update: pass at least one field flag")
	}

	var profile *api.Profile
	if a.session.User().UserRole == api.RoleAdmin {
		profile, err = a.client.UpdateAdminProfile(ctx, update)
	} else {
		profile, err = a.client.UpdateVendorProfile(ctx, update)
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	// Keep the in-memory session record in step with the edit.
	a.session.UpdateUser(profilePatch(update, profile))

	fmt.Println(a.lang.T("profile_updated", nil))
	return nil
}

func fetchProfile(ctx context.Context, a *app) (*api.Profile, error) {
	if a.session.User().UserRole == api.RoleAdmin {
		return a.client.AdminProfile(ctx)
	}
	return a.client.VendorProfile(ctx)
}

// profilePatch maps the fields the backend confirmed onto a session patch.
func profilePatch(update api.ProfileUpdate, confirmed *api.Profile) api.UserPatch {
	var patch api.UserPatch
	if update.Username != "" {
		patch.Username = &confirmed.Username
	}
	if update.Email != "" {
		patch.Email = &confirmed.Email
	}
	if update.PhoneNumber != "" {
		patch.PhoneNumber = &confirmed.PhoneNumber
	}
	if update.FacilityName != "" {
		patch.FacilityName = &confirmed.FacilityName
	}
	if update.ImagePath != "" {
		patch.ImageURL = &confirmed.ImageURL
	}
	return patch
}
