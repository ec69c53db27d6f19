package entity

import (
	"math"
	"reflect"

	"hbnb/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Kind names a domain entity category. It doubles as the record tag.
type Kind string

const (
	KindUser    Kind = "User"
	KindState   Kind = "State"
	KindCity    Kind = "City"
	KindAmenity Kind = "Amenity"
	KindPlace   Kind = "Place"
	KindReview  Kind = "Review"
)

// ErrUnknownKind is returned when a kind name has no registered constructor.
var ErrUnknownKind = errors.New("unknown kind")

// Key identifies one live instance in a session.
type Key struct {
	Kind Kind
	ID   string
}

func (k Key) String() string {
	return string(k.Kind) + "." + k.ID
}

// kinds maps every kind to its zero-value constructor. Resolved once at init.
//
//nolint:gochecknoglobals
var kinds = map[Kind]func() Entity{
	KindUser:    func() Entity { return &User{} },
	KindState:   func() Entity { return &State{} },
	KindCity:    func() Entity { return &City{} },
	KindAmenity: func() Entity { return &Amenity{} },
	KindPlace:   func() Entity { return &Place{} },
	KindReview:  func() Entity { return &Review{} },
}

// Kinds lists every registered kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindAmenity, KindCity, KindPlace, KindReview, KindState, KindUser}
}

// ParseKind resolves a kind name.
func ParseKind(name string) (Kind, error) {
	kind := Kind(name)
	if _, ok := kinds[kind]; !ok {
		return "", errors.Wrapf(ErrUnknownKind, "%q", name)
	}

	return kind, nil
}

// Create builds a new entity of kind from named attributes. A fresh id and
// timestamps are assigned unless attrs carries an id.
func Create(kind Kind, attrs map[string]any) (Entity, error) {
	newFn, ok := kinds[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}

	e := newFn()
	*e.Meta() = NewBase()

	clean := make(map[string]any, len(attrs))
	for k, v := range attrs {
		if k == ClassKey || k == "created_at" || k == "updated_at" {
			continue
		}
		clean[k] = v
	}

	if err := decode(clean, e); err != nil {
		return nil, errors.Wrapf(ErrInvalidField, "%s: %v", kind, err)
	}

	if err := Validate(e); err != nil {
		return nil, err
	}

	return e, nil
}

// FromRecord reconstructs a typed entity from a durable record.
func FromRecord(rec Record) (Entity, error) {
	name, _ := rec[ClassKey].(string)
	newFn, ok := kinds[Kind(name)]
	if !ok {
		return nil, errors.Wrapf(ErrMalformedRecord, "unknown class %q", name)
	}

	for _, required := range []string{"id", "created_at", "updated_at"} {
		if _, present := rec[required]; !present {
			return nil, errors.Wrapf(ErrMalformedRecord, "%s record missing %s", name, required)
		}
	}

	e := newFn()
	if err := decode(rec, e); err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "%s: %v", name, err)
	}

	if err := Validate(e); err != nil {
		return nil, errors.Wrapf(ErrMalformedRecord, "%s: %v", name, err)
	}

	meta := e.Meta()
	if meta.UpdatedAt.Before(meta.CreatedAt) {
		return nil, errors.Wrapf(ErrMalformedRecord, "%s.%s updated_at precedes created_at", name, meta.ID)
	}

	return e, nil
}

func decode(input map[string]any, out Entity) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(TimeLayout),
			mapstructure.DecodeHookFuncType(integralFloatHook),
		),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return decoder.Decode(input)
}

// integralFloatHook stops mapstructure from truncating JSON numbers into
// integer fields: 3.0 decodes as 3, 3.7 fails.
func integralFloatHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}

	f, ok := data.(float64)
	if !ok {
		return data, nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errors.Errorf("%v is not an integer", f)
	}

	return data, nil
}

//nolint:gochecknoglobals
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks required attributes and value ranges. An absent required
// attribute fails with ErrMissingAttribute, an out-of-range value with
// ErrInvalidField.
func Validate(e Entity) error {
	err := validate.Struct(e)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrapf(ErrInvalidField, "%s: %v", e.Kind(), err)
	}

	fe := verrs[0]
	if fe.Tag() == "required" {
		return errors.Wrapf(ErrMissingAttribute, "%s.%s", e.Kind(), fe.Field())
	}

	return errors.Wrapf(ErrInvalidField, "%s.%s fails %s=%s", e.Kind(), fe.Field(), fe.Tag(), fe.Param())
}

// Compare orders entities by kind, creation time and id.
func Compare(a, b Entity) int {
	if a.Kind() != b.Kind() {
		if a.Kind() < b.Kind() {
			return -1
		}

		return 1
	}
	if c := a.Meta().CreatedAt.Compare(b.Meta().CreatedAt); c != 0 {
		return c
	}
	if a.GetID() < b.GetID() {
		return -1
	}
	if a.GetID() > b.GetID() {
		return 1
	}

	return 0
}
