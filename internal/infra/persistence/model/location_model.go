package model

import "time"

// StateModel is the GORM-specific struct for the 'states' table.
type StateModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	Name      string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (StateModel) TableName() string {
	return "states"
}

// CityModel mirrors the 'cities' table. StateID references states.id.
type CityModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	StateID   string    `gorm:"type:varchar(60);not null;index"`
	Name      string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (CityModel) TableName() string {
	return "cities"
}
