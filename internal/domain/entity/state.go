package entity

// State is a top-level geographic area grouping cities.
type State struct {
	Base `mapstructure:",squash"`

	Name string `mapstructure:"name" validate:"required"`
}

// NewState creates a state with a fresh identity.
func NewState(name string) *State {
	return &State{Base: NewBase(), Name: name}
}

// Kind returns KindState.
func (*State) Kind() Kind { return KindState }

// ToRecord implements Entity.
func (s *State) ToRecord() Record {
	rec := s.record(KindState)
	rec["name"] = s.Name

	return rec
}

// SetField implements Entity.
func (s *State) SetField(name string, value any) error {
	return stateFields.set(s, KindState, name, value)
}

//nolint:gochecknoglobals
var stateFields = fieldSetters[*State]{
	"name": func(s *State, v any) error { return assignName(&s.Name, v) },
}
