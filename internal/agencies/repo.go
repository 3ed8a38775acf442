package agencies

import (
	"context"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
)

// Repository handles agency persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, agency *models.Agency) error
	ListAll(ctx context.Context) ([]models.Agency, error)
	FindByID(ctx context.Context, agencyID int64) (*models.Agency, error)
	Update(ctx context.Context, agency *models.Agency) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an agency repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, agency *models.Agency) error {
	return r.db.WithContext(ctx).Create(agency).Error
}

func (r *repository) ListAll(ctx context.Context) ([]models.Agency, error) {
	var rows []models.Agency
	if err := r.db.WithContext(ctx).
		Order("agency_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, agencyID int64) (*models.Agency, error) {
	var row models.Agency
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repository) Update(ctx context.Context, agency *models.Agency) error {
	return r.db.WithContext(ctx).Save(agency).Error
}
