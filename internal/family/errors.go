package family

import "errors"

var (
	// ErrInvalidGender is returned for an unknown gender token or when an edge
	// would violate a gender constraint.
	ErrInvalidGender = errors.New("invalid gender")
	// ErrTypeMismatch is returned when a mutation is handed something that is
	// not a Person of the tree.
	ErrTypeMismatch = errors.New("not a person")
	// ErrPersonNotFound is returned when the subject of a mutation is unknown.
	ErrPersonNotFound = errors.New("person not found")
	// ErrDuplicatePerson is returned when an id is already taken.
	ErrDuplicatePerson = errors.New("duplicate person")
	// ErrInvalidID is returned for an empty person id.
	ErrInvalidID = errors.New("invalid person id")
)
