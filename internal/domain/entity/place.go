package entity

import (
	"slices"

	"hbnb/internal/errors"
)

// Place is a rentable listing. It is owned by a City and by the User hosting it.
type Place struct {
	Base `mapstructure:",squash"`

	CityID          string   `mapstructure:"city_id" validate:"required"`
	UserID          string   `mapstructure:"user_id" validate:"required"`
	Name            string   `mapstructure:"name" validate:"required"`
	Description     string   `mapstructure:"description"`
	NumberRooms     int      `mapstructure:"number_rooms" validate:"min=0"`
	NumberBathrooms int      `mapstructure:"number_bathrooms" validate:"min=0"`
	MaxGuest        int      `mapstructure:"max_guest" validate:"min=0"`
	PriceByNight    int      `mapstructure:"price_by_night" validate:"min=0"`
	Latitude        float64  `mapstructure:"latitude" validate:"min=-90,max=90"`
	Longitude       float64  `mapstructure:"longitude" validate:"min=-180,max=180"`
	AmenityIDs      []string `mapstructure:"amenity_ids"`
}

// NewPlace creates a place with a fresh identity.
func NewPlace(cityID, userID, name string) *Place {
	return &Place{Base: NewBase(), CityID: cityID, UserID: userID, Name: name}
}

// Kind returns KindPlace.
func (*Place) Kind() Kind { return KindPlace }

// ToRecord implements Entity.
func (p *Place) ToRecord() Record {
	rec := p.record(KindPlace)
	rec["city_id"] = p.CityID
	rec["user_id"] = p.UserID
	rec["name"] = p.Name
	rec["description"] = p.Description
	rec["number_rooms"] = p.NumberRooms
	rec["number_bathrooms"] = p.NumberBathrooms
	rec["max_guest"] = p.MaxGuest
	rec["price_by_night"] = p.PriceByNight
	rec["latitude"] = p.Latitude
	rec["longitude"] = p.Longitude
	rec["amenity_ids"] = slices.Clone(p.amenityIDs())

	return rec
}

func (p *Place) amenityIDs() []string {
	if p.AmenityIDs == nil {
		return []string{}
	}

	return p.AmenityIDs
}

// SetField implements Entity.
func (p *Place) SetField(name string, value any) error {
	return placeFields.set(p, KindPlace, name, value)
}

// HasAmenity reports whether the amenity is linked to the place.
func (p *Place) HasAmenity(amenityID string) bool {
	return slices.Contains(p.AmenityIDs, amenityID)
}

// LinkAmenity links an amenity. It reports false when the link already existed.
func (p *Place) LinkAmenity(amenityID string) bool {
	if p.HasAmenity(amenityID) {
		return false
	}
	p.AmenityIDs = append(p.AmenityIDs, amenityID)

	return true
}

// UnlinkAmenity removes an amenity link. It reports false when there was no link.
func (p *Place) UnlinkAmenity(amenityID string) bool {
	idx := slices.Index(p.AmenityIDs, amenityID)
	if idx < 0 {
		return false
	}
	p.AmenityIDs = slices.Delete(p.AmenityIDs, idx, idx+1)

	return true
}

//nolint:gochecknoglobals
var placeFields = fieldSetters[*Place]{
	"name":             func(p *Place, v any) error { return assignName(&p.Name, v) },
	"description":      func(p *Place, v any) error { return assignString(&p.Description, "description", v) },
	"number_rooms":     func(p *Place, v any) error { return assignInt(&p.NumberRooms, "number_rooms", v) },
	"number_bathrooms": func(p *Place, v any) error { return assignInt(&p.NumberBathrooms, "number_bathrooms", v) },
	"max_guest":        func(p *Place, v any) error { return assignInt(&p.MaxGuest, "max_guest", v) },
	"price_by_night":   func(p *Place, v any) error { return assignInt(&p.PriceByNight, "price_by_night", v) },
	"latitude": func(p *Place, v any) error {
		lat := p.Latitude
		if err := assignFloat(&lat, "latitude", v); err != nil {
			return err
		}
		if lat < -90 || lat > 90 {
			return errors.Wrap(ErrInvalidField, "latitude out of range")
		}
		p.Latitude = lat

		return nil
	},
	"longitude": func(p *Place, v any) error {
		lng := p.Longitude
		if err := assignFloat(&lng, "longitude", v); err != nil {
			return err
		}
		if lng < -180 || lng > 180 {
			return errors.Wrap(ErrInvalidField, "longitude out of range")
		}
		p.Longitude = lng

		return nil
	},
}
