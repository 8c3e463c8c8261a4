package family

import "fmt"

// Gender is the closed set of genders a Person can have.
type Gender int

const (
	Male Gender = iota + 1
	Female
)

// ParseGender converts a gender token into a Gender. Only the exact tokens
// "male" and "female" are accepted.
func ParseGender(token string) (Gender, error) {
	switch token {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return 0, fmt.Errorf("%w: '%s'", ErrInvalidGender, token)
}

// String returns the token form of the gender.
func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	}
	return fmt.Sprintf("Gender(%d)", int(g))
}

// Valid reports whether g is one of the two defined genders.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// MarshalText implements encoding.TextMarshaler.
func (g Gender) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidGender, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
