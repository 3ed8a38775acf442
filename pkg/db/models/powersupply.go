package models

import "github.com/shopspring/decimal"

// PowerSupply is a single charger mounted at a station. The permission
// column gates which agency users may see it. Column name "nomal_power"
// is carried as-is from the external schema.
type PowerSupply struct {
	PowerSupplyID        int64           `gorm:"column:powersupply_id;primaryKey;autoIncrement"`
	LocationID           int64           `gorm:"column:location_id;not null;index"`
	AppPowerSupplyNumber string          `gorm:"column:app_powersupply_number;not null;uniqueIndex"`
	PowerSupplyName      string          `gorm:"column:powersupply_name;not null"`
	Plan                 *string         `gorm:"column:plan"`
	Type                 int             `gorm:"column:type"`
	Wat                  int             `gorm:"column:wat"`
	Price                decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	QuickPower           int             `gorm:"column:quick_power"`
	NomalPower           int             `gorm:"column:nomal_power"`
	Maintenance          int             `gorm:"column:maintenance"`
	Online               int             `gorm:"column:online"`
	ChargeSegment        int             `gorm:"column:charge_segment"`
	Permission           int             `gorm:"column:permission;not null"`
	CreateDate           string          `gorm:"column:create_date"`
	CreateUser           string          `gorm:"column:create_user"`
	UpdateDate           string          `gorm:"column:update_date"`
	UpdateUser           string          `gorm:"column:update_user"`
	Status               int             `gorm:"column:status;not null;default:1"`
}

func (PowerSupply) TableName() string { return "m_powersupply" }
