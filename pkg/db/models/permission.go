package models

// Permission is a catalogue row naming a dashboard permission level.
type Permission struct {
	PermissionID   int    `gorm:"column:permission_id;primaryKey"`
	PermissionName string `gorm:"column:permission_name;not null"`
}

func (Permission) TableName() string { return "m_permission" }
