package permissions

import (
	"context"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
)

// Repository reads the permission catalogue.
type Repository interface {
	ListAll(ctx context.Context) ([]models.Permission, error)
	ListBetween(ctx context.Context, low, high int) ([]models.Permission, error)
	ListUpTo(ctx context.Context, max, excluded int) ([]models.Permission, error)
	ListExcluding(ctx context.Context, excluded int) ([]models.Permission, error)
	AgencyPermissionForUser(ctx context.Context, userID int64) (int, bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a permission repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListAll(ctx context.Context) ([]models.Permission, error) {
	var rows []models.Permission
	err := r.db.WithContext(ctx).
		Order("permission_id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListBetween(ctx context.Context, low, high int) ([]models.Permission, error) {
	var rows []models.Permission
	err := r.db.WithContext(ctx).
		Where("permission_id BETWEEN ? AND ?", low, high).
		Order("permission_id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListUpTo(ctx context.Context, max, excluded int) ([]models.Permission, error) {
	var rows []models.Permission
	err := r.db.WithContext(ctx).
		Where("permission_id <= ? AND permission_id <> ?", max, excluded).
		Order("permission_id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListExcluding(ctx context.Context, excluded int) ([]models.Permission, error) {
	var rows []models.Permission
	err := r.db.WithContext(ctx).
		Where("permission_id <> ?", excluded).
		Order("permission_id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AgencyPermissionForUser(ctx context.Context, userID int64) (int, bool, error) {
	var row models.UserAgency
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.Permission, true, nil
}
