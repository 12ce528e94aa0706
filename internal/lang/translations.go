package lang

// User-facing message tables. The backend sends localized content of its own
// via Accept-Language; these cover the console's messages only.
var translations = map[string]map[string]string{
	Arabic: {
		"login_success":      "تم تسجيل الدخول بنجاح!",
		"login_failed":       "فشل في تسجيل الدخول",
		"logout_success":     "تم تسجيل الخروج بنجاح",
		"register_success":   "تم التسجيل بنجاح!",
		"register_failed":    "فشل في التسجيل",
		"language_changed":   "تم تغيير اللغة بنجاح",
		"language_failed":    "فشل في تغيير اللغة",
		"loading":            "جاري التحميل...",
		"unauthorized":       "هذا الحساب غير مخول للدخول إلى لوحة التحكم",
		"session_expired":    "انتهت الجلسة، يرجى تسجيل الدخول مرة أخرى",
		"not_logged_in":      "يجب تسجيل الدخول أولاً",
		"already_logged_in":  "أنت مسجل الدخول بالفعل باسم {user}",
		"otp_sent":           "تم إرسال رمز التحقق",
		"otp_verified":       "تم التحقق من الرمز بنجاح",
		"password_reset":     "تم إعادة تعيين كلمة المرور بنجاح",
		"profile_updated":    "تم تحديث الملف الشخصي بنجاح",
		"offer_created":      "تم إنشاء العرض بنجاح",
		"offer_accepted":     "تم قبول العرض",
		"offer_rejected":     "تم رفض العرض",
		"offer_delivered":    "تم تسليم العرض",
		"offer_completed":    "تم اكتمال العرض",
		"order_closed":       "تم إغلاق الطلب",
		"export_saved":       "تم حفظ الملف {file}",
		"confirm_prompt":     "هل أنت متأكد؟",
		"welcome":            "مرحباً {user}",
	},
	English: {
		"login_success":      "Logged in successfully!",
		"login_failed":       "Login failed",
		"logout_success":     "Logged out successfully",
		"register_success":   "Registered successfully!",
		"register_failed":    "Registration failed",
		"language_changed":   "Language changed successfully",
		"language_failed":    "Failed to change language",
		"loading":            "Loading...",
		"unauthorized":       "This account is not allowed on the dashboard",
		"session_expired":    "Session expired, please log in again",
		"not_logged_in":      "You must log in first",
		"already_logged_in":  "You are already logged in as {user}",
		"otp_sent":           "Verification code sent",
		"otp_verified":       "Code verified successfully",
		"password_reset":     "Password reset successfully",
		"profile_updated":    "Profile updated successfully",
		"offer_created":      "Offer created successfully",
		"offer_accepted":     "Offer accepted",
		"offer_rejected":     "Offer rejected",
		"offer_delivered":    "Offer marked as delivered",
		"offer_completed":    "Offer marked as completed",
		"order_closed":       "Order closed",
		"export_saved":       "Saved {file}",
		"confirm_prompt":     "Are you sure?",
		"welcome":            "Welcome {user}",
	},
}
