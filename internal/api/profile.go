package api

import (
	"context"
	"mime/multipart"
	"net/http"
)

// Profile is the editable account record. Facility fields only apply to
// vendors.
type Profile struct {
	Username           string `json:"username"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phoneNumber"`
	ImageURL           string `json:"imageUrl"`
	FacilityName       string `json:"facilityName"`
	City               string `json:"city"`
	Address            string `json:"address"`
	Website            string `json:"website"`
	Description        string `json:"description"`
	CommercialRegister string `json:"commercialRegister"`
}

// ProfileUpdate carries edited fields. Empty strings are not sent.
type ProfileUpdate struct {
	Username     string
	Email        string
	PhoneNumber  string
	FacilityName string
	City         string
	Address      string
	Website      string
	Description  string
	ImagePath    string
}

// VendorProfile returns the current vendor's profile.
func (c *Client) VendorProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, vendorProfilePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateVendorProfile submits profile edits as multipart form data (the
// avatar may be replaced in the same call).
func (c *Client) UpdateVendorProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	build := func(w *multipart.Writer) error {
		fields := map[string]string{
			"Username":      update.Username,
			"Email":         update.Email,
			"PhoneNumber":   update.PhoneNumber,
			"Faclity.Name":  update.FacilityName,
			"Faclity.City":  update.City,
			"Faclity.Address": update.Address,
			"Faclity.Website": update.Website,
			"Description":   update.Description,
		}
		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := w.WriteField(name, value); err != nil {
				return err
			}
		}
		return attachFile(w, "Image", update.ImagePath)
	}

	var out Profile
	if err := c.postMultipart(ctx, http.MethodPut, vendorProfilePath, build, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminProfile returns the current admin's profile.
func (c *Client) AdminProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.get(ctx, adminProfilePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAdminProfile submits admin profile edits as JSON.
func (c *Client) UpdateAdminProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	body := map[string]string{}
	fields := map[string]string{
		"username":    update.Username,
		"email":       update.Email,
		"phoneNumber": update.PhoneNumber,
	}
	for name, value := range fields {
		if value != "" {
			body[name] = value
		}
	}

	var out Profile
	if err := c.put(ctx, adminProfilePath, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
