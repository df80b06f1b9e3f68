package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. The frontend maps these to
// user-facing messages; the message field is a fallback.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or bad signature
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email on signup
	AuthEmailNotFound      = "AUTH_EMAIL_NOT_FOUND"     // forgot-password unknown email
	AuthCodeInvalid        = "AUTH_CODE_INVALID"        // wrong or expired reset code

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput     = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID        = "VALIDATION_INVALID_ID"
	ValidationRequired         = "VALIDATION_REQUIRED"
	ValidationPasswordMismatch = "VALIDATION_PASSWORD_MISMATCH"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Listings (PROPERTY_) ====================
	PropertyNotFound      = "PROPERTY_NOT_FOUND" // absent or not owned, never distinguished
	PropertyTooManyImages = "PROPERTY_TOO_MANY_IMAGES"
	PropertyInvalidType   = "PROPERTY_INVALID_TYPE"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalEmailError    = "INTERNAL_EMAIL_ERROR"
)
