package model

import "time"

// PlaceModel mirrors the 'places' table.
type PlaceModel struct {
	ID              string    `gorm:"type:varchar(60);primaryKey"`
	CityID          string    `gorm:"type:varchar(60);not null;index"`
	UserID          string    `gorm:"type:varchar(60);not null;index"`
	Name            string    `gorm:"type:varchar(128);not null"`
	Description     string    `gorm:"type:varchar(1024)"`
	NumberRooms     int       `gorm:"not null;default:0;check:number_rooms >= 0"`
	NumberBathrooms int       `gorm:"not null;default:0;check:number_bathrooms >= 0"`
	MaxGuest        int       `gorm:"not null;default:0;check:max_guest >= 0"`
	PriceByNight    int       `gorm:"not null;default:0;check:price_by_night >= 0"`
	Latitude        float64   `gorm:"type:double precision"`
	Longitude       float64   `gorm:"type:double precision"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (PlaceModel) TableName() string {
	return "places"
}

// PlaceAmenityModel mirrors the 'place_amenity' link table. Position keeps
// the order in which amenities were linked.
type PlaceAmenityModel struct {
	PlaceID   string `gorm:"type:varchar(60);primaryKey"`
	AmenityID string `gorm:"type:varchar(60);primaryKey"`
	Position  int    `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (PlaceAmenityModel) TableName() string {
	return "place_amenity"
}

// AmenityModel mirrors the 'amenities' table.
type AmenityModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	Name      string    `gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (AmenityModel) TableName() string {
	return "amenities"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        string    `gorm:"type:varchar(60);primaryKey"`
	PlaceID   string    `gorm:"type:varchar(60);not null;index"`
	UserID    string    `gorm:"type:varchar(60);not null;index"`
	Text      string    `gorm:"type:varchar(1024);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
