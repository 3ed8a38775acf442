package corporates

import (
	"context"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
)

// Repository handles corporate persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, corporate *models.Corporate) error
	ListAll(ctx context.Context) ([]models.Corporate, error)
	FindByID(ctx context.Context, corporateID int64) (*models.Corporate, error)
	Update(ctx context.Context, corporate *models.Corporate) error
	CountUsers(ctx context.Context, corporateID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a corporate repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, corporate *models.Corporate) error {
	return r.db.WithContext(ctx).Create(corporate).Error
}

func (r *repository) ListAll(ctx context.Context) ([]models.Corporate, error) {
	var rows []models.Corporate
	if err := r.db.WithContext(ctx).
		Order("corporate_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, corporateID int64) (*models.Corporate, error) {
	var row models.Corporate
	if err := r.db.WithContext(ctx).
		Where("corporate_id = ?", corporateID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) Update(ctx context.Context, corporate *models.Corporate) error {
	return r.db.WithContext(ctx).Save(corporate).Error
}

// CountUsers counts employees already bound to the corporate. The nav code
// sequence for new corporate users derives from this count.
func (r *repository) CountUsers(ctx context.Context, corporateID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserCorporate{}).
		Where("corporate_id = ?", corporateID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
