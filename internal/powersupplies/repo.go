package powersupplies

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
)

// Repository handles charger persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	PermissionForUser(ctx context.Context, userID int64) (int, bool, error)
	ListByLocationsAndPermissions(ctx context.Context, locationIDs []int64, permissions []int) ([]models.PowerSupply, error)
	Create(ctx context.Context, row *models.PowerSupply) error
	Update(ctx context.Context, row *models.PowerSupply) (int64, error)
	UpdatePriceByID(ctx context.Context, powerSupplyID int64, price decimal.Decimal, updateDate, updateUser string) (int64, error)
	UpdatePriceByLocation(ctx context.Context, locationID int64, price decimal.Decimal, updateDate, updateUser string) (int64, error)
	FindByNumber(ctx context.Context, appNumber string) (*models.PowerSupply, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a charger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) PermissionForUser(ctx context.Context, userID int64) (int, bool, error) {
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

func (r *repository) ListByLocationsAndPermissions(ctx context.Context, locationIDs []int64, permissions []int) ([]models.PowerSupply, error) {
	var rows []models.PowerSupply
	if err := r.db.WithContext(ctx).
		Where("location_id IN ? AND permission IN ?", locationIDs, permissions).
		Order("powersupply_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Create(ctx context.Context, row *models.PowerSupply) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) Update(ctx context.Context, row *models.PowerSupply) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PowerSupply{}).
		Where("powersupply_id = ?", row.PowerSupplyID).
		Updates(map[string]any{
			"location_id":      row.LocationID,
			"powersupply_name": row.PowerSupplyName,
			"plan":             row.Plan,
			"type":             row.Type,
			"wat":              row.Wat,
			"price":            row.Price,
			"quick_power":      row.QuickPower,
			"nomal_power":      row.NomalPower,
			"maintenance":      row.Maintenance,
			"online":           row.Online,
			"charge_segment":   row.ChargeSegment,
			"permission":       row.Permission,
			"status":           row.Status,
			"update_date":      row.UpdateDate,
			"update_user":      row.UpdateUser,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) UpdatePriceByID(ctx context.Context, powerSupplyID int64, price decimal.Decimal, updateDate, updateUser string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PowerSupply{}).
		Where("powersupply_id = ?", powerSupplyID).
		Updates(map[string]any{"price": price, "update_date": updateDate, "update_user": updateUser})
	return result.RowsAffected, result.Error
}

func (r *repository) UpdatePriceByLocation(ctx context.Context, locationID int64, price decimal.Decimal, updateDate, updateUser string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PowerSupply{}).
		Where("location_id = ?", locationID).
		Updates(map[string]any{"price": price, "update_date": updateDate, "update_user": updateUser})
	return result.RowsAffected, result.Error
}

func (r *repository) FindByNumber(ctx context.Context, appNumber string) (*models.PowerSupply, error) {
	var row models.PowerSupply
	if err := r.db.WithContext(ctx).
		Where("app_powersupply_number = ?", appNumber).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
