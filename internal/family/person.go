package family

import "fmt"

// PersonID identifies a Person inside a Tree. It carries no meaning beyond
// equality.
type PersonID string

// Person is one individual. Identity, name and gender are fixed at
// construction; edges are owned by the Tree the person belongs to and can
// only be changed through it.
type Person struct {
	id     PersonID
	name   string
	gender Gender

	mother   PersonID
	father   PersonID
	spouse   PersonID
	children []PersonID
}

// NewPerson constructs a Person with no relationships.
func NewPerson(id PersonID, name, genderToken string) (*Person, error) {
	gender, err := ParseGender(genderToken)
	if err != nil {
		return nil, fmt.Errorf("person '%s': %w", id, err)
	}
	return &Person{
		id:     id,
		name:   name,
		gender: gender,
	}, nil
}

// ID returns the person's identifier.
func (p *Person) ID() PersonID { return p.id }

// Name returns the display name.
func (p *Person) Name() string { return p.name }

// Gender returns the person's gender.
func (p *Person) Gender() Gender { return p.gender }

func (p *Person) String() string {
	return fmt.Sprintf("%s(%s)", p.name, p.id)
}

// Edges is a copy of the stored edges of a Person. Empty ids mean the edge
// is not set.
type Edges struct {
	Mother   PersonID
	Father   PersonID
	Spouse   PersonID
	Children []PersonID
}
