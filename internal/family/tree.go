package family

import (
	"fmt"
	"sync"
)

// Tree owns a set of Person records keyed by id. Edges between people are
// stored as ids, so a Tree never forms ownership cycles even when the family
// graph does.
//
// Edges are one-directional: setting a spouse or a parent, or adding a
// child, never populates the reverse edge. Callers that want a mutual
// marriage or a consistent parent/child pair set both sides.
//
// A Tree is safe for concurrent use. Each call is atomic on its own; a
// sequence of reads is not a snapshot.
type Tree struct {
	people map[PersonID]*Person
	order  []PersonID
	mu     sync.RWMutex
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		people: make(map[PersonID]*Person),
	}
}

// Add inserts a constructed person into the tree.
func (t *Tree) Add(p *Person) error {
	if p == nil {
		return ErrTypeMismatch
	}
	if p.id == "" {
		return ErrInvalidID
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.people[p.id]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicatePerson, p.id)
	}
	t.people[p.id] = p
	t.order = append(t.order, p.id)
	return nil
}

// Create constructs a person and inserts it into the tree.
func (t *Tree) Create(id PersonID, name, genderToken string) (*Person, error) {
	p, err := NewPerson(id, name, genderToken)
	if err != nil {
		return nil, err
	}
	if err := t.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Person returns the person with the given id.
func (t *Tree) Person(id PersonID) (*Person, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.people[id]
	return p, ok
}

// People returns every person in insertion order.
func (t *Tree) People() []*Person {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Person, 0, len(t.order))
	for _, id := range t.order {
		result = append(result, t.people[id])
	}
	return result
}

// Len returns the number of people in the tree.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.people)
}

// Edge names one of the stored relationships.
type Edge int

const (
	EdgeMother Edge = iota + 1
	EdgeFather
	EdgeSpouse
	EdgeChild
)

func (e Edge) String() string {
	switch e {
	case EdgeMother:
		return "mother"
	case EdgeFather:
		return "father"
	case EdgeSpouse:
		return "spouse"
	case EdgeChild:
		return "child"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// SetMother sets the mother of id. The mother must be female.
func (t *Tree) SetMother(id, motherID PersonID) error {
	return t.Link(EdgeMother, id, motherID)
}

// SetFather sets the father of id. The father must be male.
func (t *Tree) SetFather(id, fatherID PersonID) error {
	return t.Link(EdgeFather, id, fatherID)
}

// SetSpouse sets the spouse of id. Spouses must be of different genders.
func (t *Tree) SetSpouse(id, spouseID PersonID) error {
	return t.Link(EdgeSpouse, id, spouseID)
}

// AddChild appends childID to the children of id. Duplicates are kept.
func (t *Tree) AddChild(id, childID PersonID) error {
	return t.Link(EdgeChild, id, childID)
}

// Link sets edge from id to otherID. Nothing is assigned unless every
// check passes.
func (t *Tree) Link(edge Edge, id, otherID PersonID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, other, err := t.resolve(edge, id, otherID)
	if err != nil {
		return err
	}

	switch edge {
	case EdgeMother:
		p.mother = other.id
	case EdgeFather:
		p.father = other.id
	case EdgeSpouse:
		p.spouse = other.id
	case EdgeChild:
		p.children = append(p.children, other.id)
	}
	return nil
}

// Check reports the error Link would return, without changing the tree.
func (t *Tree) Check(edge Edge, id, otherID PersonID) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, _, err := t.resolve(edge, id, otherID)
	return err
}

// resolve looks up both ends and validates the edge. Callers hold t.mu.
func (t *Tree) resolve(edge Edge, id, otherID PersonID) (*Person, *Person, error) {
	p, ok := t.people[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: '%s'", ErrPersonNotFound, id)
	}
	other, ok := t.people[otherID]
	if !ok {
		return nil, nil, fmt.Errorf("invalid value for %s '%s': %w", edge, otherID, ErrTypeMismatch)
	}

	switch edge {
	case EdgeMother:
		if other.gender != Female {
			return nil, nil, fmt.Errorf("%w: mother '%s' is %s", ErrInvalidGender, other.id, other.gender)
		}
	case EdgeFather:
		if other.gender != Male {
			return nil, nil, fmt.Errorf("%w: father '%s' is %s", ErrInvalidGender, other.id, other.gender)
		}
	case EdgeSpouse:
		if other.gender == p.gender {
			return nil, nil, fmt.Errorf("%w: spouse '%s' has the same gender as '%s'", ErrInvalidGender, other.id, p.id)
		}
	case EdgeChild:
	default:
		return nil, nil, fmt.Errorf("unknown edge %s", edge)
	}
	return p, other, nil
}

// Mother returns the mother of id, if set.
func (t *Tree) Mother(id PersonID) (*Person, bool) {
	return t.follow(id, func(p *Person) PersonID { return p.mother })
}

// Father returns the father of id, if set.
func (t *Tree) Father(id PersonID) (*Person, bool) {
	return t.follow(id, func(p *Person) PersonID { return p.father })
}

// Spouse returns the spouse of id, if set.
func (t *Tree) Spouse(id PersonID) (*Person, bool) {
	return t.follow(id, func(p *Person) PersonID { return p.spouse })
}

func (t *Tree) follow(id PersonID, edge func(*Person) PersonID) (*Person, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.people[id]
	if !ok {
		return nil, false
	}
	target := edge(p)
	if target == "" {
		return nil, false
	}
	related, ok := t.people[target]
	return related, ok
}

// Children returns the children of id in the order they were added. The
// result is never nil.
func (t *Tree) Children(id PersonID) []*Person {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.people[id]
	if !ok {
		return []*Person{}
	}
	result := make([]*Person, 0, len(p.children))
	for _, childID := range p.children {
		result = append(result, t.people[childID])
	}
	return result
}

// Edges returns a copy of the stored edges of id.
func (t *Tree) Edges(id PersonID) (Edges, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.people[id]
	if !ok {
		return Edges{}, false
	}
	children := make([]PersonID, len(p.children))
	copy(children, p.children)
	return Edges{
		Mother:   p.mother,
		Father:   p.father,
		Spouse:   p.spouse,
		Children: children,
	}, true
}
