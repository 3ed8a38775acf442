package identity

// AdminLoginRequest carries the platform admin credential.
type AdminLoginRequest struct {
	UserID   int64  `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse echoes the admin's internal id. The login endpoint
// renders matches as an array of these rows.
type AdminLoginResponse struct {
	UserID int64 `json:"user_id"`
}

// AdminResetCheckRequest verifies an admin credential by public number
// before a password reset.
type AdminResetCheckRequest struct {
	AppUserNumber string `json:"app_user_number" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

// AdminResetCheckResponse confirms the account the reset applies to.
type AdminResetCheckResponse struct {
	AppUserNumber string `json:"app_user_number"`
}

// AgencyLoginRequest carries the agency staff credential. The phone
// number is the pool username.
type AgencyLoginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,jp_phone"`
	Password    string `json:"password" validate:"required"`
}

// AgencyLoginResponse is a completed agency login. The user_id field
// carries the public app_user_number.
type AgencyLoginResponse struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"accessToken"`
}

// CorporateLoginRequest carries the corporate staff credential.
type CorporateLoginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,jp_phone"`
	Password    string `json:"password" validate:"required"`
}

// CorporateLoginResponse is a completed corporate login.
type CorporateLoginResponse struct {
	AppUserNumber string `json:"app_user_number"`
}

// SMS function types, matching the dashboard's onboarding wizard.
const (
	SMSFuncFirstAuth      = 0
	SMSFuncVerifyCode     = 1
	SMSFuncResendCode     = 2
	SMSFuncForgotPassword = 3
	SMSFuncConfirmForgot  = 4
)

// SMSRequest drives the multi-step SMS verification flow. Which fields
// are required depends on FunctionType.
type SMSRequest struct {
	PhoneNumber     string `json:"phoneNumber" validate:"required,jp_phone"`
	FunctionType    *int   `json:"functionType" validate:"required"`
	EchNaviCode     string `json:"echNaviCode"`
	InitialPassword string `json:"initialPassword"`
	NewPassword     string `json:"newPassword"`
	AuthCode        string `json:"authCode"`
	Session         string `json:"session"`
}

// SMSResult is one step outcome: the message shown to the user plus
// step-specific data (a session token or the resolved user number).
type SMSResult struct {
	Message string
	Data    any
}
