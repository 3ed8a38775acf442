package agencies

// RegisterRequest carries the fields of a new agency row.
type RegisterRequest struct {
	Agency     string  `json:"agency" validate:"required"`
	ZipCode    string  `json:"zip_code" validate:"required"`
	Prefecture string  `json:"prefecture" validate:"required"`
	City       string  `json:"city" validate:"required"`
	Address    string  `json:"address" validate:"required"`
	Building   *string `json:"building"`
	Country    string  `json:"country" validate:"required"`
	Telephone  string  `json:"telephone" validate:"required"`
}

// RegisterResponse returns the identifiers minted for the new agency.
type RegisterResponse struct {
	AgencyID        int64  `json:"agency_id"`
	AppAgencyNumber string `json:"app_agency_number"`
}

// UpdateRequest carries the full agency row for an update. Every column is
// written, so the dashboard always submits the complete record.
type UpdateRequest struct {
	AgencyID        int64   `json:"agency_id" validate:"required"`
	AppAgencyNumber string  `json:"app_agency_number" validate:"required"`
	Company         string  `json:"company" validate:"required"`
	ZipCode         string  `json:"zip_code" validate:"required"`
	Prefecture      string  `json:"prefecture" validate:"required"`
	City            string  `json:"city" validate:"required"`
	Address         string  `json:"address" validate:"required"`
	Building        *string `json:"building"`
	Country         string  `json:"country" validate:"required"`
	Telephone       string  `json:"telephone" validate:"required"`
	Status          *int    `json:"status" validate:"required"`
}

// AgencyDTO is the row shape returned by list and update operations.
type AgencyDTO struct {
	AgencyID        int64   `json:"agency_id"`
	AppAgencyNumber string  `json:"app_agency_number"`
	Company         string  `json:"company"`
	ZipCode         string  `json:"zip_code"`
	Prefecture      string  `json:"prefecture"`
	City            string  `json:"city"`
	Address         string  `json:"address"`
	Building        *string `json:"building"`
	Country         string  `json:"country"`
	Telephone       string  `json:"telephone"`
	Status          int     `json:"status"`
}
