package models

import "github.com/echnavi/charge-admin-backend/pkg/enums"

// User is the canonical identity row shared by every dashboard role.
// Audit columns carry JST wall-clock strings, matching the external schema.
type User struct {
	UserID        int64              `gorm:"column:user_id;primaryKey;autoIncrement"`
	EchNaviCode   string             `gorm:"column:echnavicode;not null;uniqueIndex"`
	AppUserNumber string             `gorm:"column:app_user_number;not null;uniqueIndex"`
	UserCategory  enums.UserCategory `gorm:"column:user_category;not null"`
	LastName      string             `gorm:"column:lastname;not null"`
	FirstName     string             `gorm:"column:firstname;not null"`
	Mail          string             `gorm:"column:mail"`
	CreateDate    string             `gorm:"column:create_date"`
	CreateUser    string             `gorm:"column:create_user"`
	UpdateDate    string             `gorm:"column:update_date"`
	UpdateUser    string             `gorm:"column:update_user"`
	Status        int                `gorm:"column:status;not null;default:1"`
}

func (User) TableName() string { return "m_user" }

// UserAdmin holds the platform admin credential. The stored value is an
// Argon2id hash, never the plain password.
type UserAdmin struct {
	UserID       int64  `gorm:"column:user_id;primaryKey"`
	PasswordHash string `gorm:"column:password;not null"`
}

func (UserAdmin) TableName() string { return "m_user_admin" }

// UserAgency binds a user to a reseller agency. One row per user.
type UserAgency struct {
	UserID     int64   `gorm:"column:user_id;primaryKey"`
	AgencyID   int64   `gorm:"column:agency_id;not null;index"`
	Permission int     `gorm:"column:permission;not null"`
	Password   *string `gorm:"column:password"`
}

func (UserAgency) TableName() string { return "m_user_agency" }

// UserCorporate binds a user to a corporate client. One row per user.
type UserCorporate struct {
	UserID      int64   `gorm:"column:user_id;primaryKey"`
	CorporateID int64   `gorm:"column:corporate_id;not null;index"`
	Permission  int     `gorm:"column:permission;not null"`
	Password    *string `gorm:"column:password"`
}

func (UserCorporate) TableName() string { return "m_user_corporate" }

// UserGeneral marks a user as an individual app consumer.
type UserGeneral struct {
	UserID int64 `gorm:"column:user_id;primaryKey"`
}

func (UserGeneral) TableName() string { return "m_user_general" }
