package models

// Corporate is a client company whose employees charge on the network.
type Corporate struct {
	CorporateID        int64   `gorm:"column:corporate_id;primaryKey;autoIncrement"`
	AppCorporateNumber string  `gorm:"column:app_corporate_number;not null;uniqueIndex"`
	Company            string  `gorm:"column:company;not null"`
	ZipCode            string  `gorm:"column:zip_code"`
	Prefecture         string  `gorm:"column:prefecture"`
	City               string  `gorm:"column:city"`
	Address            string  `gorm:"column:address"`
	Building           *string `gorm:"column:building"`
	Country            string  `gorm:"column:country"`
	Telephone          string  `gorm:"column:telephone"`
	CreateDate         string  `gorm:"column:create_date"`
	CreateUser         string  `gorm:"column:create_user"`
	UpdateDate         string  `gorm:"column:update_date"`
	UpdateUser         string  `gorm:"column:update_user"`
	Status             int     `gorm:"column:status;not null;default:1"`
}

func (Corporate) TableName() string { return "m_corporate" }
