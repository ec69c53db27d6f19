package entity

// Amenity is a feature a place can offer, like "Wifi".
type Amenity struct {
	Base `mapstructure:",squash"`

	Name string `mapstructure:"name" validate:"required"`
}

// NewAmenity creates an amenity with a fresh identity.
func NewAmenity(name string) *Amenity {
	return &Amenity{Base: NewBase(), Name: name}
}

// Kind returns KindAmenity.
func (*Amenity) Kind() Kind { return KindAmenity }

// ToRecord implements Entity.
func (a *Amenity) ToRecord() Record {
	rec := a.record(KindAmenity)
	rec["name"] = a.Name

	return rec
}

// SetField implements Entity.
func (a *Amenity) SetField(name string, value any) error {
	return amenityFields.set(a, KindAmenity, name, value)
}

//nolint:gochecknoglobals
var amenityFields = fieldSetters[*Amenity]{
	"name": func(a *Amenity, v any) error { return assignName(&a.Name, v) },
}
