package entity

// City belongs to a State through StateID.
type City struct {
	Base `mapstructure:",squash"`

	StateID string `mapstructure:"state_id" validate:"required"`
	Name    string `mapstructure:"name" validate:"required"`
}

// NewCity creates a city with a fresh identity.
func NewCity(stateID, name string) *City {
	return &City{Base: NewBase(), StateID: stateID, Name: name}
}

// Kind returns KindCity.
func (*City) Kind() Kind { return KindCity }

// ToRecord implements Entity.
func (c *City) ToRecord() Record {
	rec := c.record(KindCity)
	rec["state_id"] = c.StateID
	rec["name"] = c.Name

	return rec
}

// SetField implements Entity.
func (c *City) SetField(name string, value any) error {
	return cityFields.set(c, KindCity, name, value)
}

//nolint:gochecknoglobals
var cityFields = fieldSetters[*City]{
	"name": func(c *City, v any) error { return assignName(&c.Name, v) },
}
