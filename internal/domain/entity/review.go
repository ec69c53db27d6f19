package entity

import "hbnb/internal/errors"

// Review associates a User's text with a Place.
type Review struct {
	Base `mapstructure:",squash"`

	PlaceID string `mapstructure:"place_id" validate:"required"`
	UserID  string `mapstructure:"user_id" validate:"required"`
	Text    string `mapstructure:"text" validate:"required"`
}

// NewReview creates a review with a fresh identity.
func NewReview(placeID, userID, text string) *Review {
	return &Review{Base: NewBase(), PlaceID: placeID, UserID: userID, Text: text}
}

// Kind returns KindReview.
func (*Review) Kind() Kind { return KindReview }

// ToRecord implements Entity.
func (r *Review) ToRecord() Record {
	rec := r.record(KindReview)
	rec["place_id"] = r.PlaceID
	rec["user_id"] = r.UserID
	rec["text"] = r.Text

	return rec
}

// SetField implements Entity.
func (r *Review) SetField(name string, value any) error {
	return reviewFields.set(r, KindReview, name, value)
}

//nolint:gochecknoglobals
var reviewFields = fieldSetters[*Review]{
	"text": func(r *Review, v any) error {
		var text string
		if err := assignString(&text, "text", v); err != nil {
			return err
		}
		if text == "" {
			return errors.Wrap(ErrInvalidField, "text must not be empty")
		}
		r.Text = text

		return nil
	},
}
