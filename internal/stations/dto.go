package stations

// ListRequest selects stations of the caller's agency by status.
type ListRequest struct {
	UserID int64 `json:"userId" validate:"required"`
	Status *int  `json:"status" validate:"required"`
}

// StationDTO is the station row returned to the dashboard. Opening hours
// are normalized to "HH:MM".
type StationDTO struct {
	UserID      int64   `json:"user_id"`
	LocationID  int64   `json:"location_id"`
	StationName string  `json:"station_name"`
	AgencyID    int64   `json:"agency_id"`
	ZipCode     string  `json:"zip_code"`
	Prefecture  string  `json:"prefecture"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Building    *string `json:"building"`
	OpenTime    string  `json:"open_time"`
	EndTime     string  `json:"end_time"`
	OpenDay     string  `json:"open_day"`
	Status      int     `json:"status"`
}

// RegisterRequest carries a new station. The owning agency derives from
// the caller's user row.
type RegisterRequest struct {
	UserID      int64   `json:"user_id" validate:"required"`
	StationName string  `json:"station_name" validate:"required"`
	ZipCode     string  `json:"zip_code" validate:"required"`
	Prefecture  string  `json:"prefecture" validate:"required"`
	City        string  `json:"city" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Building    *string `json:"building"`
	OpenTime    string  `json:"open_time" validate:"required"`
	EndTime     string  `json:"end_time" validate:"required"`
	OpenDay     string  `json:"open_day" validate:"required"`
}

// RegisterResponse returns the number minted for the new station.
type RegisterResponse struct {
	AppLocationNumber string `json:"app_location_number"`
}

// UpdateRequest rewrites a station row. Absent fields clear their columns,
// matching how the dashboard always submits the complete form.
type UpdateRequest struct {
	LocationID  int64   `json:"location_id" validate:"required"`
	StationName string  `json:"station_name"`
	ZipCode     string  `json:"zip_code"`
	Prefecture  string  `json:"prefecture"`
	City        string  `json:"city"`
	Address     string  `json:"address"`
	Building    *string `json:"building"`
	OpenTime    string  `json:"open_time"`
	EndTime     string  `json:"end_time"`
	OpenDay     string  `json:"open_day"`
	Status      *int    `json:"status"`
}

// UpdateResponse echoes the updated station identity.
type UpdateResponse struct {
	LocationID  int64  `json:"location_id"`
	StationName string `json:"station_name"`
}
