package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge is one charging session. Written by the charging subsystem,
// read-only for this service.
type Charge struct {
	TransactionID int64 `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	PowerSupplyID int64 `gorm:"column:powersupply_id;not null;index"`
	UserID        int64 `gorm:"column:user_id;not null;index"`
}

func (Charge) TableName() string { return "t_charge" }

// ChargeHistory holds the metering figures of a session.
type ChargeHistory struct {
	TransactionID int64           `gorm:"column:transaction_id;primaryKey"`
	ChargingStart *time.Time      `gorm:"column:charging_start;index"`
	ChargingEnd   *time.Time      `gorm:"column:charging_end"`
	ChargingTime  int             `gorm:"column:charging_time"`
	ChargingRate  decimal.Decimal `gorm:"column:charging_rate;type:numeric(10,2)"`
	ChargedAmount decimal.Decimal `gorm:"column:charged_amount;type:numeric(10,2)"`
	BillingAmount decimal.Decimal `gorm:"column:billing_amount;type:numeric(10,2)"`
}

func (ChargeHistory) TableName() string { return "t_charge_history" }

// ChargePayment tracks the settlement state of a session.
type ChargePayment struct {
	TransactionID int64 `gorm:"column:transaction_id;primaryKey"`
	PaymentStatus int   `gorm:"column:payment_status;not null;default:0"`
}

func (ChargePayment) TableName() string { return "t_charge_payment" }
