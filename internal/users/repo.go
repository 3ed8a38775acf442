package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
)

// memberRecord is the scan target for the dashboard user joins.
type memberRecord struct {
	UserID         int64
	AppUserNumber  string
	LastName       string `gorm:"column:lastname"`
	FirstName      string `gorm:"column:firstname"`
	UserCategory   int
	Status         int
	Permission     int
	AgencyID       int64
	CorporateID    int64
	Company        string
	PermissionName string
}

// Repository handles user master persistence across all dashboard roles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListIndividuals(ctx context.Context, email string) ([]models.User, error)
	UserIDByAppNumber(ctx context.Context, appUserNumber string) (int64, bool, error)
	FindByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateStatus(ctx context.Context, userID int64, status int, updateDate, updateUser string) (int64, error)
	UpdateProfile(ctx context.Context, userID int64, lastName, firstName string, status int, updateDate, updateUser string) error
	UpdateNamesAndStatus(ctx context.Context, userID int64, lastName, firstName string, status int) error
	Create(ctx context.Context, user *models.User) error

	FindAgencyMembership(ctx context.Context, userID int64) (*models.UserAgency, error)
	CreateAgencyMembership(ctx context.Context, membership *models.UserAgency) error
	UpdateAgencyBinding(ctx context.Context, userID, agencyID int64) error
	UpdateAgencyPermission(ctx context.Context, userID int64, permission int) error
	ListAgencyUsersAll(ctx context.Context) ([]memberRecord, error)
	ListAgencyColleagues(ctx context.Context, userID int64) ([]memberRecord, error)
	AgencySelf(ctx context.Context, userID int64) ([]memberRecord, error)

	FindCorporateMembership(ctx context.Context, userID int64) (*models.UserCorporate, error)
	CreateCorporateMembership(ctx context.Context, membership *models.UserCorporate) error
	UpdateCorporatePermission(ctx context.Context, userID int64, permission int) error
	CountCorporateUsers(ctx context.Context, corporateID int64) (int64, error)
	ListCorporateUsersAll(ctx context.Context) ([]memberRecord, error)
	ListCorporateColleagues(ctx context.Context, userID int64) ([]memberRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a user repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListIndividuals(ctx context.Context, email string) ([]models.User, error) {
	q := r.db.WithContext(ctx).
		Table("m_user AS a").
		Select("a.*").
		Joins("JOIN m_user_general b ON a.user_id = b.user_id").
		Where("a.user_category = ? AND a.status <> ?", enums.CategoryIndividual, enums.StatusDeleted)
	if email != "" {
		q = q.Where("a.mail = ?", email)
	}
	var rows []models.User
	if err := q.Order("a.user_id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UserIDByAppNumber(ctx context.Context, appUserNumber string) (int64, bool, error) {
	var row models.User
	if err := r.db.WithContext(ctx).
		Where("app_user_number = ?", appUserNumber).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.UserID, true, nil
}

func (r *repository) FindByID(ctx context.Context, userID int64) (*models.User, error) {
	var row models.User
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) UpdateStatus(ctx context.Context, userID int64, status int, updateDate, updateUser string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"status":      status,
			"update_date": updateDate,
			"update_user": updateUser,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) UpdateProfile(ctx context.Context, userID int64, lastName, firstName string, status int, updateDate, updateUser string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"lastname":    lastName,
			"firstname":   firstName,
			"status":      status,
			"update_date": updateDate,
			"update_user": updateUser,
		}).Error
}

func (r *repository) UpdateNamesAndStatus(ctx context.Context, userID int64, lastName, firstName string, status int) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"lastname":  lastName,
			"firstname": firstName,
			"status":    status,
		}).Error
}

func (r *repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) FindAgencyMembership(ctx context.Context, userID int64) (*models.UserAgency, error) {
	var row models.UserAgency
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) CreateAgencyMembership(ctx context.Context, membership *models.UserAgency) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *repository) UpdateAgencyBinding(ctx context.Context, userID, agencyID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.UserAgency{}).
		Where("user_id = ?", userID).
		Update("agency_id", agencyID).Error
}

func (r *repository) UpdateAgencyPermission(ctx context.Context, userID int64, permission int) error {
	return r.db.WithContext(ctx).
		Model(&models.UserAgency{}).
		Where("user_id = ?", userID).
		Update("permission", permission).Error
}

func (r *repository) ListAgencyUsersAll(ctx context.Context) ([]memberRecord, error) {
	var rows []memberRecord
	err := r.db.WithContext(ctx).
		Table("m_user AS a").
		Select("a.user_id, a.app_user_number, a.lastname, a.firstname, a.status, b.permission, b.agency_id, c.company").
		Joins("JOIN m_user_agency b ON a.user_id = b.user_id").
		Joins("JOIN m_agency c ON b.agency_id = c.agency_id").
		Where("a.user_category = ? AND a.status <> ?", enums.CategoryAgency, enums.StatusDeleted).
		Order("b.agency_id, a.user_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListAgencyColleagues(ctx context.Context, userID int64) ([]memberRecord, error) {
	var rows []memberRecord
	err := r.db.WithContext(ctx).
		Table("m_user AS a").
		Select("a.user_id, a.app_user_number, a.lastname, a.firstname, a.status, b.permission").
		Joins("JOIN m_user_agency b ON a.user_id = b.user_id").
		Where("b.agency_id = (SELECT agency_id FROM m_user_agency WHERE user_id = ?)", userID).
		Where("a.user_category = ? AND a.status <> ?", enums.CategoryAgency, enums.StatusDeleted).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) AgencySelf(ctx context.Context, userID int64) ([]memberRecord, error) {
	var rows []memberRecord
	err := r.db.WithContext(ctx).
		Table("m_user AS a").
		Select("a.user_id, a.app_user_number, a.lastname, a.firstname, a.user_category, a.status, b.permission, c.permission_name").
		Joins("JOIN m_user_agency b ON a.user_id = b.user_id").
		Joins("JOIN m_permission c ON b.permission = c.permission_id").
		Where("a.user_id = ? AND a.status <> ?", userID, enums.StatusDeleted).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindCorporateMembership(ctx context.Context, userID int64) (*models.UserCorporate, error) {
	var row models.UserCorporate
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) CreateCorporateMembership(ctx context.Context, membership *models.UserCorporate) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *repository) UpdateCorporatePermission(ctx context.Context, userID int64, permission int) error {
	return r.db.WithContext(ctx).
		Model(&models.UserCorporate{}).
		Where("user_id = ?", userID).
		Update("permission", permission).Error
}

func (r *repository) CountCorporateUsers(ctx context.Context, corporateID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserCorporate{}).
		Where("corporate_id = ?", corporateID).
		Count(&count).Error
	return count, err
}

func (r *repository) ListCorporateUsersAll(ctx context.Context) ([]memberRecord, error) {
	var rows []memberRecord
	err := r.db.WithContext(ctx).
		Table("m_user AS a").
		Select("a.user_id, a.app_user_number, a.lastname, a.firstname, a.status, b.permission, b.corporate_id, c.company").
		Joins("JOIN m_user_corporate b ON a.user_id = b.user_id").
		Joins("JOIN m_corporate c ON b.corporate_id = c.corporate_id").
		Where("a.user_category = ? AND a.status <> ?", enums.CategoryCorporate, enums.StatusDeleted).
		Order("b.corporate_id, a.user_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListCorporateColleagues(ctx context.Context, userID int64) ([]memberRecord, error) {
	var rows []memberRecord
	err := r.db.WithContext(ctx).
		Table("m_user AS a").
		Select("a.user_id, a.app_user_number, a.lastname, a.firstname, a.status, b.permission").
		Joins("JOIN m_user_corporate b ON a.user_id = b.user_id").
		Where("b.corporate_id = (SELECT corporate_id FROM m_user_corporate WHERE user_id = ?)", userID).
		Where("a.user_category = ? AND a.status <> ?", enums.CategoryCorporate, enums.StatusDeleted).
		Scan(&rows).Error
	return rows, err
}
