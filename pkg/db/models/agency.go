package models

// Agency is a reseller organization operating charging stations.
type Agency struct {
	AgencyID        int64   `gorm:"column:agency_id;primaryKey;autoIncrement"`
	AppAgencyNumber string  `gorm:"column:app_agency_number;not null;uniqueIndex"`
	Company         string  `gorm:"column:company;not null"`
	ZipCode         string  `gorm:"column:zip_code"`
	Prefecture      string  `gorm:"column:prefecture"`
	City            string  `gorm:"column:city"`
	Address         string  `gorm:"column:address"`
	Building        *string `gorm:"column:building"`
	Country         string  `gorm:"column:country"`
	Telephone       string  `gorm:"column:telephone"`
	CreateDate      string  `gorm:"column:create_date"`
	CreateUser      string  `gorm:"column:create_user"`
	UpdateDate      string  `gorm:"column:update_date"`
	UpdateUser      string  `gorm:"column:update_user"`
	Status          int     `gorm:"column:status;not null;default:1"`
}

func (Agency) TableName() string { return "m_agency" }
