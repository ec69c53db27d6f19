package entity

// User is an account that can host places and write reviews.
// Password holds a hash, never the plaintext.
type User struct {
	Base `mapstructure:",squash"`

	Email     string `mapstructure:"email" validate:"required"`
	Password  string `mapstructure:"password" validate:"required"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
}

// NewUser creates a user with a fresh identity.
func NewUser(email, passwordHash string) *User {
	return &User{Base: NewBase(), Email: email, Password: passwordHash}
}

// Kind returns KindUser.
func (*User) Kind() Kind { return KindUser }

// DisplayName is the user's full name as shown on listings.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// ToRecord implements Entity.
func (u *User) ToRecord() Record {
	rec := u.record(KindUser)
	rec["email"] = u.Email
	rec["password"] = u.Password
	rec["first_name"] = u.FirstName
	rec["last_name"] = u.LastName

	return rec
}

// SetField implements Entity. A password value must already be hashed.
func (u *User) SetField(name string, value any) error {
	return userFields.set(u, KindUser, name, value)
}

//nolint:gochecknoglobals
var userFields = fieldSetters[*User]{
	"first_name": func(u *User, v any) error { return assignString(&u.FirstName, "first_name", v) },
	"last_name":  func(u *User, v any) error { return assignString(&u.LastName, "last_name", v) },
	"password":   func(u *User, v any) error { return assignString(&u.Password, "password", v) },
}
