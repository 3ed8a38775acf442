package powersupplies

import "github.com/shopspring/decimal"

// ListRequest selects the chargers of one or more stations, filtered by
// the caller's permission level.
type ListRequest struct {
	LocationIDs []int64 `json:"location_id" validate:"required,min=1"`
	UserID      int64   `json:"user_id" validate:"required"`
}

// PowerSupplyDTO is the charger row returned to the dashboard.
type PowerSupplyDTO struct {
	PowerSupplyID        int64           `json:"powersupply_id"`
	LocationID           int64           `json:"location_id"`
	AppPowerSupplyNumber string          `json:"app_powersupply_number"`
	PowerSupplyName      string          `json:"powersupply_name"`
	Plan                 *string         `json:"plan"`
	Type                 int             `json:"type"`
	Wat                  int             `json:"wat"`
	Price                decimal.Decimal `json:"price"`
	QuickPower           int             `json:"quick_power"`
	NomalPower           int             `json:"nomal_power"`
	Maintenance          int             `json:"maintenance"`
	Online               int             `json:"online"`
	ChargeSegment        int             `json:"charge_segment"`
	Permission           int             `json:"permission"`
	Status               int             `json:"status"`
}

// RegisterRequest carries a new charger row.
type RegisterRequest struct {
	LocationID      int64           `json:"location_id" validate:"required"`
	PowerSupplyName string          `json:"powersupply_name" validate:"required"`
	Type            *int            `json:"type" validate:"required"`
	Wat             *int            `json:"wat" validate:"required"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	QuickPower      *int            `json:"quick_power" validate:"required"`
	NomalPower      *int            `json:"nomal_power" validate:"required"`
	Maintenance     *int            `json:"maintenance" validate:"required"`
	Online          *int            `json:"online" validate:"required"`
	ChargeSegment   *int            `json:"charge_segment" validate:"required"`
	Permission      *int            `json:"permission" validate:"required"`
}

// RegisterResponse returns the number minted for the new charger.
type RegisterResponse struct {
	AppPowerSupplyNumber string `json:"app_powersupply_number"`
}

// UpdateRequest rewrites a charger row in full.
type UpdateRequest struct {
	PowerSupplyID   int64           `json:"powersupply_id" validate:"required"`
	LocationID      int64           `json:"location_id"`
	PowerSupplyName string          `json:"powersupply_name"`
	Plan            *string         `json:"plan"`
	Type            int             `json:"type"`
	Wat             int             `json:"wat"`
	Price           decimal.Decimal `json:"price"`
	QuickPower      int             `json:"quick_power"`
	NomalPower      int             `json:"nomal_power"`
	Maintenance     int             `json:"maintenance"`
	Online          int             `json:"online"`
	ChargeSegment   int             `json:"charge_segment"`
	Permission      int             `json:"permission"`
	Status          int             `json:"status"`
}

// UpdateResponse echoes the updated charger identity.
type UpdateResponse struct {
	PowerSupplyID   int64  `json:"powersupply_id"`
	PowerSupplyName string `json:"powersupply_name"`
}

// ChargeFeeRequest reprices one charger or every charger at a station.
// Exactly one of PowerSupplyID and LocationID must be set.
type ChargeFeeRequest struct {
	PowerSupplyID *int64          `json:"powersupply_id"`
	LocationID    *int64          `json:"location_id"`
	Price         decimal.Decimal `json:"price" validate:"required"`
}

// ChargeFeeResponse echoes the repricing scope.
type ChargeFeeResponse struct {
	PowerSupplyID *int64          `json:"powersupply_id"`
	LocationID    *int64          `json:"location_id"`
	Price         decimal.Decimal `json:"price"`
}

// QRInfoRequest looks a charger up by its printed QR number.
type QRInfoRequest struct {
	AppPowerSupplyNumber string `json:"app_powersupply_number" validate:"required"`
}

// QRInfoResponse is the minimal charger identity shown after a QR scan.
type QRInfoResponse struct {
	AppPowerSupplyNumber string `json:"app_powersupply_number"`
	PowerSupplyName      string `json:"powersupply_name"`
}
