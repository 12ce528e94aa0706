package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tajerhq/vendorctl/internal/api"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), configFileName))
		require.NoError(t, err)

		assert.Empty(t, cfg.Server)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.True(t, cfg.Cache)
	})

	t.Run("reads file values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), configFileName)
		require.NoError(t, os.WriteFile(path, []byte("server: https://api.example.com/api\ntimeout: 10s\ncache: false\n"), 0600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com/api", cfg.Server)
		assert.Equal(t, 10*time.Second, cfg.Timeout)
		assert.False(t, cfg.Cache)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), configFileName)
		require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0600))

		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}

func TestTokenExpiry(t *testing.T) {
	t.Run("reads the exp claim", func(t *testing.T) {
		expires := time.Now().Add(time.Hour).Truncate(time.Second)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "7",
			"exp": expires.Unix(),
		})
		signed, err := token.SignedString([]byte("test-key"))
		require.NoError(t, err)

		got, ok := tokenExpiry(signed)
		require.True(t, ok)
		assert.Equal(t, expires.Unix(), got.Unix())
	})

	t.Run("opaque token has no expiry", func(t *testing.T) {
		_, ok := tokenExpiry("not-a-jwt")
		assert.False(t, ok)
	})

	t.Run("empty token", func(t *testing.T) {
		_, ok := tokenExpiry("")
		assert.False(t, ok)
	})
}

func TestOffersCreateCmd_BuildInput(t *testing.T) {
	t.Run("draft file with flag overrides", func(t *testing.T) {
		draft := filepath.Join(t.TempDir(), "offer.yaml")
		require.NoError(t, os.WriteFile(draft, []byte(`
productName: steel pipes
productDescription: galvanized, 3m
price: 1200
expiresIn: "2026-09-30"
specialOffer:
  payCount: 2
  getCount: 1
  productName: fittings
  discountPercentage: 10
`), 0600))

		cmd := &OffersCreateCmd{Draft: draft, Price: 1500}

		input, err := cmd.buildInput()
		require.NoError(t, err)

		assert.Equal(t, "steel pipes", input.ProductName)
		assert.Equal(t, float64(1500), input.Price, "flag wins over draft")
		assert.Equal(t, "2026-09-30", input.ExpiresIn)
		require.NotNil(t, input.Special)
		assert.Equal(t, 2, input.Special.PayCount)
	})

	t.Run("flags only", func(t *testing.T) {
		cmd := &OffersCreateCmd{Product: "cement", Price: 80}

		input, err := cmd.buildInput()
		require.NoError(t, err)

		assert.Equal(t, "cement", input.ProductName)
		assert.Nil(t, input.Special)
	})
}

func TestProfilePatch(t *testing.T) {
	confirmed := &api.Profile{
		Username:    "vendor1",
		Email:       "new@example.com",
		PhoneNumber: "+962790000000",
	}

	patch := profilePatch(api.ProfileUpdate{Email: "new@example.com"}, confirmed)

	require.NotNil(t, patch.Email)
	assert.Equal(t, "new@example.com", *patch.Email)
	assert.Nil(t, patch.Username, "untouched fields are not patched")
	assert.Nil(t, patch.PhoneNumber)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 25))
	assert.Equal(t, "a very long product na...", truncate("a very long product name indeed", 25))
}
