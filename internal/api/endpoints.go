package api

import "net/url"

// Backend endpoint paths. The paths are the contract with the backend and are
// kept verbatim, including its spellings.
const (
	loginPath          = "/Auth/login"
	registerVendorPath = "/Auth/register/vendor"
	userInfoPath       = "/Auth/GetUserInfo"

	passwordSendOTPPath   = "/Auth/password/send-otp"
	passwordVerifyOTPPath = "/Auth/password/verify-otp"
	passwordResetPath     = "/Auth/password/reset"
	verifyOTPPath         = "/Auth/verfiyOtp"
	resendOTPPath         = "/Auth/reSendAuth-otp"

	dashboardVendorPath  = "/Dashboard/vendor"
	dashboardAdminPath   = "/Dashboard/admin"
	dashboardSummaryPath = "/Dashboard/summary"
	profitByYearPath     = "/Dashboard/profit-by-year"
	topProductsPath      = "/Dashboard/top-products"
	chartsPath           = "/Dashboard/charts"
	dashboardExportPath  = "/Dashboard/export"

	vendorOrdersPath         = "/Vendor/Orders"
	vendorOffersToManagePath = "/Vendor/OffersToManage"
	adminOrdersPath          = "/Admin/Orders"
	adminOffersToManagePath  = "/Admin/OffersToManage"

	vendorProfilePath = "/Vendor/Profile"
	adminProfilePath  = "/Admin/Profile"

	changeLanguagePath = "/Customer/ChangeLanguage"
)

func refreshTokenPath(refreshToken string) string {
	return "/Auth/refresh-token/" + url.PathEscape(refreshToken)
}

func logoutPath(refreshToken string) string {
	return "/Auth/logout/" + url.PathEscape(refreshToken)
}

func validateEmailPath(email string) string {
	return "/Auth/validate-email/" + url.PathEscape(email)
}

func validateUsernamePath(username string) string {
	return "/Auth/validate-username/" + url.PathEscape(username)
}

func validatePhonePath(phone string) string {
	return "/Auth/validate-phone/" + url.PathEscape(phone)
}

func orderDetailsPath(orderID int64) string {
	return "/Vendor/Order/" + formatID(orderID)
}

func createOfferPath(orderID int64) string {
	return "/Vendor/CreateOffer/" + formatID(orderID)
}

func offerDetailsPath(offerID int64) string {
	return "/Offer/OfferDetails/" + formatID(offerID)
}

func acceptOfferPath(offerID int64) string {
	return "/Vendor/AcceptOffer/" + formatID(offerID)
}

func rejectOfferPath(offerID int64) string {
	return "/Vendor/RejectOffer/" + formatID(offerID)
}

func closeOrderPath(orderID int64) string {
	return "/Admin/CloseOrder/" + formatID(orderID)
}

func markOfferDeliveredPath(offerID int64) string {
	return "/Admin/MarkOfferAsDelivered/" + formatID(offerID)
}

func markOfferCompletedPath(offerID int64) string {
	return "/Admin/MarkOfferAsCompleted/" + formatID(offerID)
}
