package users

// IndividualListRequest filters the consumer list. Email narrows to an
// exact match when present.
type IndividualListRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// IndividualUserDTO is one consumer row on the admin dashboard.
type IndividualUserDTO struct {
	AppUserNumber string `json:"app_user_number"`
	LastName      string `json:"lastname"`
	FirstName     string `json:"firstname"`
	Status        int    `json:"status"`
	Mail          string `json:"mail"`
}

// IndividualUpdateRequest changes a consumer's status. The user_id field
// carries the public app_user_number, not the internal id.
type IndividualUpdateRequest struct {
	AppUserNumber string `json:"user_id" validate:"required"`
	Status        *int   `json:"status" validate:"required,oneof=1 2 3"`
}

// IndividualUpdateResponse echoes the internal id of the updated row.
type IndividualUpdateResponse struct {
	UserID int64 `json:"user_id"`
}

// AssignAgencyRequest binds an existing user to an agency (admin only).
type AssignAgencyRequest struct {
	AppUserNumber string `json:"app_user_number" validate:"required"`
	AgencyID      int64  `json:"agency_id" validate:"required"`
}

// AssignAgencyResponse confirms the binding.
type AssignAgencyResponse struct {
	AppUserNumber string `json:"app_user_number"`
	AgencyID      int64  `json:"agency_id"`
}

// AgencyListRequest selects one of three query modes: every agency user
// (GetAllFlg), the caller's colleagues (GetCompanyUsersFlg), or the
// caller themselves. UserID is the internal id here.
type AgencyListRequest struct {
	UserID             int64 `json:"userId"`
	GetAllFlg          int   `json:"getAllFlg"`
	GetCompanyUsersFlg int   `json:"getCompanyUsersFlg"`
}

// AgencyUserDTO is one agency dashboard user. Company is only present in
// the all-users mode, UserCategory and PermissionName only in self mode.
type AgencyUserDTO struct {
	UserID         int64   `json:"user_id"`
	AppUserNumber  string  `json:"app_user_number"`
	LastName       string  `json:"lastname"`
	FirstName      string  `json:"firstname"`
	UserCategory   *int    `json:"user_category,omitempty"`
	Status         int     `json:"status"`
	Permission     int     `json:"permission"`
	Company        *string `json:"company,omitempty"`
	PermissionName *string `json:"permission_name,omitempty"`
}

// AgencyUpdateRequest rewrites an agency user's profile and permission.
type AgencyUpdateRequest struct {
	AppUserNumber string `json:"app_user_number" validate:"required"`
	LastName      string `json:"lastname" validate:"required"`
	FirstName     string `json:"firstname" validate:"required"`
	Status        *int   `json:"status" validate:"required,oneof=1 2 3"`
	Permission    *int   `json:"permission" validate:"required,min=1,max=7"`
}

// AgencyUpdateResponse echoes the updated profile fields.
type AgencyUpdateResponse struct {
	AppUserNumber string `json:"app_user_number"`
	LastName      string `json:"lastname"`
	FirstName     string `json:"firstname"`
}

// AgencyRegisterRequest creates an agency dashboard user. Either the
// caller's AppUserNumber or an explicit AgencyID pins the agency.
type AgencyRegisterRequest struct {
	AppUserNumber string `json:"app_user_number"`
	AgencyID      *int64 `json:"agencyId"`
	LastName      string `json:"lastName" validate:"required"`
	FirstName     string `json:"firstName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,jp_phone"`
	Permission    *int   `json:"permission" validate:"required,min=1,max=7"`
}

// RegisterResponse is the outcome of either register flow.
type RegisterResponse struct {
	AppUserNumber   string `json:"app_user_number"`
	CognitoUsername string `json:"cognito_username"`
	EchNaviCode     string `json:"ech_nav_code"`
}

// CorporateListRequest lists corporate users. userId carries the caller's
// app_user_number and is required unless GetAllFlg is set.
type CorporateListRequest struct {
	AppUserNumber string `json:"userId"`
	GetAllFlg     int    `json:"getAllFlg"`
}

// CorporateUserDTO is one corporate dashboard user. CorporateID and
// Company only appear in the all-users mode.
type CorporateUserDTO struct {
	UserID        int64   `json:"user_id"`
	AppUserNumber string  `json:"app_user_number"`
	LastName      string  `json:"lastname"`
	FirstName     string  `json:"firstname"`
	Status        int     `json:"status"`
	Permission    int     `json:"permission"`
	CorporateID   *int64  `json:"corporate_id,omitempty"`
	Company       *string `json:"company,omitempty"`
}

// CorporateUpdateRequest rewrites a corporate user's profile and
// permission. The user_id field carries the app_user_number.
type CorporateUpdateRequest struct {
	AppUserNumber string `json:"user_id" validate:"required"`
	LastName      string `json:"lastname" validate:"required"`
	FirstName     string `json:"firstname" validate:"required"`
	Status        *int   `json:"status" validate:"required,oneof=1 2 3"`
	Permission    *int   `json:"permission" validate:"required"`
}

// CorporateRegisterRequest creates a corporate dashboard user.
type CorporateRegisterRequest struct {
	AppUserNumber string `json:"app_user_number"`
	CorporateID   *int64 `json:"corporateId"`
	LastName      string `json:"lastName" validate:"required"`
	FirstName     string `json:"firstName" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,jp_phone"`
}
