package constants

// Session / context keys
const (
	SessionCookieName = "campus_session"

	ContextKeyUserID        = "user_id"
	ContextKeyUserRole      = "user_role"
	ContextKeyInstitutionID = "institution_id"
)

// Pagination bounds
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Password policy
const (
	MinPasswordLength = 8
)

// PhoneLength is the normalized local phone number length (11 digits).
const PhoneLength = 11
