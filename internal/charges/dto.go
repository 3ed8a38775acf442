package charges

import "github.com/shopspring/decimal"

// HistoryRequest selects sessions in a period. The user_id field carries
// the caller's app_user_number; when powersupply_ids is absent the
// charger scope derives from the caller's agency and permission level.
type HistoryRequest struct {
	StartPeriod   string  `json:"start_period" validate:"required"`
	EndPeriod     string  `json:"end_period" validate:"required"`
	AppUserNumber string  `json:"user_id"`
	PowerSupplyIDs []int64 `json:"powersupply_ids"`
}

// HistoryRow is one charging session with its station and user context.
type HistoryRow struct {
	TransactionID        int64           `json:"transaction_id"`
	PowerSupplyID        int64           `json:"powersupply_id"`
	UserID               int64           `json:"user_id"`
	ChargingStart        *string         `json:"charging_start"`
	ChargingEnd          *string         `json:"charging_end"`
	ChargedAmount        decimal.Decimal `json:"charged_amount"`
	BillingAmount        decimal.Decimal `json:"billing_amount"`
	AppUserNumber        string          `json:"app_user_number"`
	StationName          string          `json:"station_name"`
	AppPowerSupplyNumber string          `json:"app_powersupply_number"`
	PowerSupplyName      string          `json:"powersupply_name"`
}

// UnpaidRequest selects unsettled sessions visible to the caller.
type UnpaidRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// UnpaidRow is one unsettled session with the customer identity attached.
type UnpaidRow struct {
	TransactionID        int64           `json:"transaction_id"`
	StationName          string          `json:"station_name"`
	AppPowerSupplyNumber string          `json:"app_powersupply_number"`
	ChargingStart        *string         `json:"charging_start"`
	ChargingTime         int             `json:"charging_time"`
	ChargingRate         decimal.Decimal `json:"charging_rate"`
	ChargedAmount        decimal.Decimal `json:"charged_amount"`
	BillingAmount        decimal.Decimal `json:"billing_amount"`
	AppUserNumber        string          `json:"app_user_number"`
	LastName             string          `json:"lastname"`
	FirstName            string          `json:"firstname"`
}

// DownloadRequest exports the full history of one station or one charger.
type DownloadRequest struct {
	LocationID    *int64 `json:"location_id"`
	PowerSupplyID *int64 `json:"powersupply_id"`
}

// DownloadRow is one exported session.
type DownloadRow struct {
	TransactionID        int64           `json:"transaction_id"`
	ChargingStart        *string         `json:"charging_start"`
	ChargingEnd          *string         `json:"charging_end"`
	ChargedAmount        decimal.Decimal `json:"charged_amount"`
	BillingAmount        decimal.Decimal `json:"billing_amount"`
	AppUserNumber        string          `json:"app_user_number"`
	StationName          string          `json:"station_name"`
	AppPowerSupplyNumber string          `json:"app_powersupply_number"`
	PowerSupplyName      string          `json:"powersupply_name"`
}
