package charges

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
)

// sessionRecord is the scan target for the history joins.
type sessionRecord struct {
	TransactionID        int64
	PowerSupplyID        int64 `gorm:"column:powersupply_id"`
	UserID               int64
	ChargingStart        *time.Time
	ChargingEnd          *time.Time
	ChargingTime         int
	ChargingRate         decimal.Decimal
	ChargedAmount        decimal.Decimal
	BillingAmount        decimal.Decimal
	AppUserNumber        string
	LastName             string `gorm:"column:lastname"`
	FirstName            string `gorm:"column:firstname"`
	StationName          string
	AppPowerSupplyNumber string `gorm:"column:app_powersupply_number"`
	PowerSupplyName      string `gorm:"column:powersupply_name"`
}

// Repository reads the charging session tables. All session data is
// written by the charging subsystem; this service only queries it.
type Repository interface {
	UserIDByAppNumber(ctx context.Context, appUserNumber string) (int64, bool, error)
	PermissionAndAgency(ctx context.Context, userID int64) (int, int64, bool, error)
	PowerSupplyIDsForUser(ctx context.Context, userID int64, permissions []int) ([]int64, error)
	PowerSupplyIDsForAgency(ctx context.Context, agencyID int64, permissions []int) ([]int64, error)
	ListSessions(ctx context.Context, powerSupplyIDs []int64, startPeriod, endPeriod string) ([]sessionRecord, error)
	ListUnpaidSessions(ctx context.Context, powerSupplyIDs []int64) ([]sessionRecord, error)
	ListSessionsByLocation(ctx context.Context, locationID int64) ([]sessionRecord, error)
	ListSessionsByPowerSupply(ctx context.Context, powerSupplyID int64) ([]sessionRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a session repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
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

func (r *repository) PermissionAndAgency(ctx context.Context, userID int64) (int, int64, bool, error) {
	var row models.UserAgency
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, 0, false, nil
		}
		return 0, 0, false, err
	}
	return row.Permission, row.AgencyID, true, nil
}

func (r *repository) PowerSupplyIDsForUser(ctx context.Context, userID int64, permissions []int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("m_user_agency AS a").
		Select("c.powersupply_id").
		Joins("JOIN m_location b ON a.agency_id = b.agency_id").
		Joins("JOIN m_powersupply c ON b.location_id = c.location_id").
		Where("a.user_id = ? AND c.permission IN ?", userID, permissions).
		Scan(&ids).Error
	return ids, err
}

func (r *repository) PowerSupplyIDsForAgency(ctx context.Context, agencyID int64, permissions []int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("m_powersupply AS p").
		Distinct("p.powersupply_id").
		Joins("JOIN m_location l ON p.location_id = l.location_id").
		Where("l.agency_id = ? AND p.permission IN ?", agencyID, permissions).
		Scan(&ids).Error
	return ids, err
}

func (r *repository) ListSessions(ctx context.Context, powerSupplyIDs []int64, startPeriod, endPeriod string) ([]sessionRecord, error) {
	var rows []sessionRecord
	err := r.db.WithContext(ctx).
		Table("t_charge").
		Select(`t_charge.transaction_id, t_charge.powersupply_id, t_charge.user_id,
			t_charge_history.charging_start, t_charge_history.charging_end,
			t_charge_history.charged_amount, t_charge_history.billing_amount,
			m_user.app_user_number, m_location.station_name,
			m_powersupply.app_powersupply_number, m_powersupply.powersupply_name`).
		Joins("JOIN t_charge_history ON t_charge.transaction_id = t_charge_history.transaction_id").
		Joins("JOIN m_user ON t_charge.user_id = m_user.user_id").
		Joins("JOIN m_powersupply ON t_charge.powersupply_id = m_powersupply.powersupply_id").
		Joins("JOIN m_location ON m_powersupply.location_id = m_location.location_id").
		Where("t_charge.powersupply_id IN ?", powerSupplyIDs).
		Where("t_charge_history.charging_start BETWEEN ? AND ?", startPeriod, endPeriod).
		Order("t_charge_history.charging_start ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListUnpaidSessions(ctx context.Context, powerSupplyIDs []int64) ([]sessionRecord, error) {
	var rows []sessionRecord
	err := r.db.WithContext(ctx).
		Table("t_charge").
		Select(`t_charge.transaction_id, m_location.station_name,
			m_powersupply.app_powersupply_number,
			t_charge_history.charging_start, t_charge_history.charging_time,
			t_charge_history.charging_rate, t_charge_history.charged_amount,
			t_charge_history.billing_amount,
			m_user.app_user_number, m_user.lastname, m_user.firstname`).
		Joins("JOIN t_charge_payment ON t_charge.transaction_id = t_charge_payment.transaction_id").
		Joins("JOIN t_charge_history ON t_charge.transaction_id = t_charge_history.transaction_id").
		Joins("JOIN m_powersupply ON t_charge.powersupply_id = m_powersupply.powersupply_id").
		Joins("JOIN m_location ON m_powersupply.location_id = m_location.location_id").
		Joins("JOIN m_user ON t_charge.user_id = m_user.user_id").
		Where("t_charge.powersupply_id IN ?", powerSupplyIDs).
		Where("t_charge_payment.payment_status = ?", 0).
		Order("t_charge_history.charging_start DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListSessionsByLocation(ctx context.Context, locationID int64) ([]sessionRecord, error) {
	return r.listForExport(ctx, "m_location.location_id = ?", locationID)
}

func (r *repository) ListSessionsByPowerSupply(ctx context.Context, powerSupplyID int64) ([]sessionRecord, error) {
	return r.listForExport(ctx, "t_charge.powersupply_id = ?", powerSupplyID)
}

func (r *repository) listForExport(ctx context.Context, condition string, arg any) ([]sessionRecord, error) {
	var rows []sessionRecord
	err := r.db.WithContext(ctx).
		Table("t_charge").
		Select(`t_charge.transaction_id,
			t_charge_history.charging_start, t_charge_history.charging_end,
			t_charge_history.charged_amount, t_charge_history.billing_amount,
			m_user.app_user_number, m_location.station_name,
			m_powersupply.app_powersupply_number, m_powersupply.powersupply_name`).
		Joins("JOIN t_charge_history ON t_charge.transaction_id = t_charge_history.transaction_id").
		Joins("JOIN m_user ON t_charge.user_id = m_user.user_id").
		Joins("JOIN m_powersupply ON t_charge.powersupply_id = m_powersupply.powersupply_id").
		Joins("JOIN m_location ON m_powersupply.location_id = m_location.location_id").
		Where(condition, arg).
		Order("t_charge_history.charging_start DESC").
		Scan(&rows).Error
	return rows, err
}
