package stations

import (
	"context"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
)

// Repository handles station persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	AgencyIDForUser(ctx context.Context, userID int64) (int64, bool, error)
	ListByAgencyAndStatus(ctx context.Context, agencyID int64, status int) ([]models.Location, error)
	LastLocationNumber(ctx context.Context, agencyID int64) (string, bool, error)
	Create(ctx context.Context, location *models.Location) error
	Update(ctx context.Context, location *models.Location) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a station repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// AgencyIDForUser resolves the agency owning the caller's account.
func (r *repository) AgencyIDForUser(ctx context.Context, userID int64) (int64, bool, error) {
	var row models.UserAgency
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, false, nil
		}
		return 0, false, err
	}
	return row.AgencyID, true, nil
}

func (r *repository) ListByAgencyAndStatus(ctx context.Context, agencyID int64, status int) ([]models.Location, error) {
	var rows []models.Location
	if err := r.db.WithContext(ctx).
		Where("agency_id = ? AND status = ?", agencyID, status).
		Order("location_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LastLocationNumber returns the highest app_location_number issued for
// the agency, if any.
func (r *repository) LastLocationNumber(ctx context.Context, agencyID int64) (string, bool, error) {
	var row models.Location
	if err := r.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("app_location_number DESC").
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return row.AppLocationNumber, true, nil
}

func (r *repository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

// Update rewrites every mutable column and reports the affected row count.
func (r *repository) Update(ctx context.Context, location *models.Location) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("location_id = ?", location.LocationID).
		Updates(map[string]any{
			"station_name": location.StationName,
			"zip_code":     location.ZipCode,
			"prefecture":   location.Prefecture,
			"city":         location.City,
			"address":      location.Address,
			"building":     location.Building,
			"open_time":    location.OpenTime,
			"end_time":     location.EndTime,
			"open_day":     location.OpenDay,
			"status":       location.Status,
			"update_date":  location.UpdateDate,
			"update_user":  location.UpdateUser,
		})
	return result.RowsAffected, result.Error
}
