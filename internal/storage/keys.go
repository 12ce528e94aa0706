package storage

// Key names for the durable state file. The HTTP transport reads the same
// entries as the store (tokens for the Authorization header, language for
// Accept-Language), so the names live here once rather than being hard-coded
// on both sides.
const (
	KeyAuthToken    = "authToken"
	KeyRefreshToken = "refreshToken"
	KeyRememberMe   = "rememberMe"
	KeyUserEmail    = "userEmail"
	KeyLanguage     = "language"
)
