package identity

import (
	"context"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
)

// Repository reads the credential and identity rows behind the login flows.
type Repository interface {
	AdminCredentialByID(ctx context.Context, userID int64) (*models.UserAdmin, error)
	AdminCredentialByNumber(ctx context.Context, appUserNumber string) (*models.UserAdmin, string, error)
	AppNumberByNavCode(ctx context.Context, echNaviCode string, category enums.UserCategory) (string, bool, error)
	AppNumberByNavCodeAnyCategory(ctx context.Context, echNaviCode string) (string, bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an identity repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AdminCredentialByID(ctx context.Context, userID int64) (*models.UserAdmin, error) {
	var row models.UserAdmin
	err := r.db.WithContext(ctx).
		Joins("JOIN m_user ON m_user.user_id = m_user_admin.user_id").
		Where("m_user_admin.user_id = ? AND m_user.user_category = ?", userID, enums.CategoryAdmin).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) AdminCredentialByNumber(ctx context.Context, appUserNumber string) (*models.UserAdmin, string, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("app_user_number = ? AND user_category = ?", appUserNumber, enums.CategoryAdmin).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", nil
		}
		return nil, "", err
	}

	var credential models.UserAdmin
	err = r.db.WithContext(ctx).
		Where("user_id = ?", user.UserID).
		First(&credential).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &credential, user.AppUserNumber, nil
}

func (r *repository) AppNumberByNavCode(ctx context.Context, echNaviCode string, category enums.UserCategory) (string, bool, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("echnavicode = ? AND user_category = ?", echNaviCode, category).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return row.AppUserNumber, true, nil
}

func (r *repository) AppNumberByNavCodeAnyCategory(ctx context.Context, echNaviCode string) (string, bool, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("echnavicode = ?", echNaviCode).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return row.AppUserNumber, true, nil
}
