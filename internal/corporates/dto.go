package corporates

// RegisterRequest carries the fields of a new corporate client row.
type RegisterRequest struct {
	Corporate  string  `json:"corporate" validate:"required"`
	ZipCode    string  `json:"zip_code" validate:"required"`
	Prefecture string  `json:"prefecture" validate:"required"`
	City       string  `json:"city" validate:"required"`
	Address    string  `json:"address" validate:"required"`
	Building   *string `json:"building"`
	Country    string  `json:"country" validate:"required"`
	Telephone  string  `json:"telephone" validate:"required"`
}

// RegisterResponse returns the identifiers minted for the new corporate.
type RegisterResponse struct {
	CorporateID        int64  `json:"corporate_id"`
	AppCorporateNumber string `json:"app_corporate_number"`
}

// UpdateRequest carries the full corporate row for an update.
type UpdateRequest struct {
	CorporateID        int64   `json:"corporate_id" validate:"required"`
	AppCorporateNumber string  `json:"app_corporate_number" validate:"required"`
	Company            string  `json:"company" validate:"required"`
	ZipCode            string  `json:"zip_code" validate:"required"`
	Prefecture         string  `json:"prefecture" validate:"required"`
	City               string  `json:"city" validate:"required"`
	Address            string  `json:"address" validate:"required"`
	Building           *string `json:"building"`
	Country            string  `json:"country" validate:"required"`
	Telephone          string  `json:"telephone" validate:"required"`
	Status             *int    `json:"status" validate:"required"`
}

// CorporateDTO is the row shape returned by list and update operations.
type CorporateDTO struct {
	CorporateID        int64   `json:"corporate_id"`
	AppCorporateNumber string  `json:"app_corporate_number"`
	Company            string  `json:"company"`
	ZipCode            string  `json:"zip_code"`
	Prefecture         string  `json:"prefecture"`
	City               string  `json:"city"`
	Address            string  `json:"address"`
	Building           *string `json:"building"`
	Country            string  `json:"country"`
	Telephone          string  `json:"telephone"`
	Status             int     `json:"status"`
}
