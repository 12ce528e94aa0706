package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tajerhq/vendorctl/internal/storage"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = New(Config{}, store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL")
}

func TestClient_DecodesValidationErrors(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"message": "invalid registration data",
			"errors": map[string][]string{
				"Email":       {"email already in use"},
				"PhoneNumber": {"phone number is invalid"},
			},
		})
	})

	client, _ := newTestClient(t, handler, nil)

	_, err := client.Login(context.Background(), Credentials{Identifier: "vendor1", Password: "x"}, false)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid registration data", apiErr.Message)
	assert.True(t, apiErr.IsValidation())
	assert.Equal(t, []string{"email already in use"}, apiErr.Fields["Email"])
}

func TestClient_Login(t *testing.T) {
	var gotBody map[string]any

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, loginPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"accessToken": "abc", "refreshToken": "xyz", "userId": 7,
		})
	})

	client, _ := newTestClient(t, handler, nil)

	resp, err := client.Login(context.Background(), Credentials{Identifier: "vendor1", Password: "secret123"}, true)
	require.NoError(t, err)

	assert.Equal(t, "abc", resp.AccessToken)
	assert.Equal(t, "xyz", resp.RefreshToken)
	assert.Equal(t, int64(7), resp.UserID)

	// The backend's field spelling is part of the contract.
	assert.Equal(t, "vendor1", gotBody["Identifer"])
	assert.Equal(t, true, gotBody["rememberMe"])
}

func TestClient_VendorOrdersPagination(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, vendorOrdersPath, r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("pageNumber"))
		assert.Equal(t, "25", r.URL.Query().Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(OrderPage{ //nolint:errcheck
			Items:      []Order{{OrderID: 42, ProductName: "steel pipes"}},
			PageNumber: 2,
			TotalPages: 3,
		})
	})

	client, store := newTestClient(t, handler, nil)
	require.NoError(t, store.SetTokens("abc", "xyz"))

	page, err := client.VendorOrders(context.Background(), 2, 25)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(42), page.Items[0].OrderID)
	assert.Equal(t, 3, page.TotalPages)
}

func TestClient_CreateOfferMultipart(t *testing.T) {
	mediaPath := filepath.Join(t.TempDir(), "product.jpg")
	require.NoError(t, os.WriteFile(mediaPath, []byte("jpeg-bytes"), 0600))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Vendor/CreateOffer/42", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "1500", r.FormValue("Price"))
		assert.Equal(t, "2026-09-30", r.FormValue("ExpierdIn"))
		assert.Equal(t, "steel pipes", r.FormValue("ProductName"))
		assert.Equal(t, "2", r.FormValue("SpecialOffer.PayCount"))

		file, header, err := r.FormFile("Media")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "product.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Offer{OfferID: 9, OrderID: 42, Price: 1500}) //nolint:errcheck
	})

	client, store := newTestClient(t, handler, nil)
	require.NoError(t, store.SetTokens("abc", "xyz"))

	offer, err := client.CreateOffer(context.Background(), 42, OfferInput{
		ProductName:        "steel pipes",
		ProductDescription: "galvanized, 3m",
		Price:              1500,
		ExpiresIn:          "2026-09-30",
		Special:            &SpecialOffer{PayCount: 2, GetCount: 1, ProductName: "fittings", DiscountPercentage: 10},
		MediaPaths:         []string{mediaPath},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), offer.OfferID)
}

func TestClient_ExportDashboard(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, dashboardExportPath, r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("orderId,profit\n42,1500\n")) //nolint:errcheck
	})

	client, store := newTestClient(t, handler, nil)
	require.NoError(t, store.SetTokens("abc", "xyz"))

	data, err := client.ExportDashboard(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "orderId,profit\n42,1500\n", string(data))
}

func TestClient_ChangeLanguage(t *testing.T) {
	var gotQuery string

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, changeLanguagePath, r.URL.Path)
		gotQuery = r.URL.Query().Get("language")
		w.WriteHeader(http.StatusOK)
	})

	client, store := newTestClient(t, handler, nil)
	require.NoError(t, store.SetTokens("abc", "xyz"))

	require.NoError(t, client.ChangeLanguage(context.Background(), "en"))
	assert.Equal(t, "en", gotQuery)
}

func TestClient_GetUserInfo(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, userInfoPath, r.URL.Path)
		writeUser(w, RoleAdmin)
	})

	client, store := newTestClient(t, handler, nil)
	require.NoError(t, store.SetTokens("abc", "xyz"))

	user, err := client.GetUserInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, RoleAdmin, user.UserRole)
	assert.Equal(t, "vendor1", user.Username)
}

func TestClient_RegisterVendorMultipart(t *testing.T) {
	logoPath := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(logoPath, []byte("png-bytes"), 0600))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, registerVendorPath, r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "vendor1", r.FormValue("Username"))
		assert.Equal(t, "Steel Works", r.FormValue("Faclity.Name"))
		assert.Equal(t, "Jordan", r.FormValue("Faclity.Country"))
		assert.ElementsMatch(t, []string{"construction", "plumbing"}, r.MultipartForm.Value["Faclity.Activities"])

		_, header, err := r.FormFile("Faclity.Logo")
		require.NoError(t, err)
		assert.Equal(t, "logo.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(RegisterResponse{Success: true, UserID: 11}) //nolint:errcheck
	})

	client, _ := newTestClient(t, handler, nil)

	resp, err := client.RegisterVendor(context.Background(), RegisterInput{
		Username:        "vendor1",
		Email:           "vendor1@example.com",
		PhoneNumber:     "+962790000000",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		Facility: Facility{
			Name:       "Steel Works",
			Country:    "Jordan",
			City:       "Amman",
			Activities: []string{"construction", "plumbing"},
			LogoPath:   logoPath,
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(11), resp.UserID)
}

func TestDecodeError_PlainTextBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable")) //nolint:errcheck
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	var apiErr *Error
	require.ErrorAs(t, decodeError(resp), &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
	assert.False(t, apiErr.IsValidation())
}
