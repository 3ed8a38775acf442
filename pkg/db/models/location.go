package models

// Location is a charging station operated by an agency. Opening hours are
// stored as "HH:MM" wall-clock strings.
type Location struct {
	LocationID        int64   `gorm:"column:location_id;primaryKey;autoIncrement"`
	AgencyID          int64   `gorm:"column:agency_id;not null;index"`
	AppLocationNumber string  `gorm:"column:app_location_number;not null"`
	StationName       string  `gorm:"column:station_name;not null"`
	ZipCode           string  `gorm:"column:zip_code"`
	Prefecture        string  `gorm:"column:prefecture"`
	City              string  `gorm:"column:city"`
	Address           string  `gorm:"column:address"`
	Building          *string `gorm:"column:building"`
	OpenTime          string  `gorm:"column:open_time"`
	EndTime           string  `gorm:"column:end_time"`
	OpenDay           string  `gorm:"column:open_day"`
	CreateDate        string  `gorm:"column:create_date"`
	CreateUser        string  `gorm:"column:create_user"`
	UpdateDate        string  `gorm:"column:update_date"`
	UpdateUser        string  `gorm:"column:update_user"`
	Status            int     `gorm:"column:status;not null;default:1"`
}

func (Location) TableName() string { return "m_location" }
