package relation

import (
	"familytree/internal/family"
)

// Query answers one collection relationship for a person.
type Query func(id family.PersonID) []*family.Person

// Resolver derives relationships from a family.Tree. It never mutates the
// tree and keeps no state between calls.
type Resolver struct {
	tree    *family.Tree
	queries map[Kind]Query
}

// NewResolver creates a resolver over tree.
func NewResolver(tree *family.Tree) *Resolver {
	r := &Resolver{tree: tree}
	r.queries = map[Kind]Query{
		PaternalAunt:  r.PaternalAunt,
		PaternalUncle: r.PaternalUncle,
		MaternalAunt:  r.MaternalAunt,
		MaternalUncle: r.MaternalUncle,
		BrotherInLaw:  r.BrotherInLaw,
		SisterInLaw:   r.SisterInLaw,
		Son:           r.Son,
		Daughter:      r.Daughter,
		Siblings:      r.Siblings,
	}
	return r
}

// Get dispatches a relationship token to its query. Unknown tokens match
// nothing and yield an empty slice.
func (r *Resolver) Get(id family.PersonID, token string) []*family.Person {
	query, ok := r.queries[Kind(token)]
	if !ok {
		return []*family.Person{}
	}
	return query(id)
}

// Relative answers a single-result relationship by name.
func (r *Resolver) Relative(id family.PersonID, name Relative) (*family.Person, bool) {
	switch name {
	case PaternalGrandmother:
		return r.PaternalGrandmother(id)
	case MaternalGrandmother:
		return r.MaternalGrandmother(id)
	case SpouseMother:
		return r.SpouseMother(id)
	}
	return nil, false
}

// PaternalGrandmother returns the father's mother.
func (r *Resolver) PaternalGrandmother(id family.PersonID) (*family.Person, bool) {
	father, ok := r.tree.Father(id)
	if !ok {
		return nil, false
	}
	return r.tree.Mother(father.ID())
}

// MaternalGrandmother returns the mother's mother.
func (r *Resolver) MaternalGrandmother(id family.PersonID) (*family.Person, bool) {
	mother, ok := r.tree.Mother(id)
	if !ok {
		return nil, false
	}
	return r.tree.Mother(mother.ID())
}

// SpouseMother returns the spouse's mother.
func (r *Resolver) SpouseMother(id family.PersonID) (*family.Person, bool) {
	spouse, ok := r.tree.Spouse(id)
	if !ok {
		return nil, false
	}
	return r.tree.Mother(spouse.ID())
}

// PaternalAunt returns the daughters of the paternal grandmother. The
// father is male and drops out through the gender filter alone.
func (r *Resolver) PaternalAunt(id family.PersonID) []*family.Person {
	grandmother, ok := r.PaternalGrandmother(id)
	if !ok {
		return []*family.Person{}
	}
	return r.childrenOf(grandmother.ID(), family.Female, "")
}

// PaternalUncle returns the sons of the paternal grandmother other than the
// father.
func (r *Resolver) PaternalUncle(id family.PersonID) []*family.Person {
	grandmother, ok := r.PaternalGrandmother(id)
	if !ok {
		return []*family.Person{}
	}
	return r.childrenOf(grandmother.ID(), family.Male, r.edge(r.tree.Father, id))
}

// MaternalAunt returns the daughters of the maternal grandmother other than
// the mother.
func (r *Resolver) MaternalAunt(id family.PersonID) []*family.Person {
	grandmother, ok := r.MaternalGrandmother(id)
	if !ok {
		return []*family.Person{}
	}
	return r.childrenOf(grandmother.ID(), family.Female, r.edge(r.tree.Mother, id))
}

// MaternalUncle returns the sons of the maternal grandmother.
func (r *Resolver) MaternalUncle(id family.PersonID) []*family.Person {
	grandmother, ok := r.MaternalGrandmother(id)
	if !ok {
		return []*family.Person{}
	}
	return r.childrenOf(grandmother.ID(), family.Male, "")
}

// BrotherInLaw returns the sons of the spouse's mother, leaving out the
// spouse.
func (r *Resolver) BrotherInLaw(id family.PersonID) []*family.Person {
	motherInLaw, ok := r.SpouseMother(id)
	if !ok {
		return []*family.Person{}
	}
	return r.childrenOf(motherInLaw.ID(), family.Male, r.edge(r.tree.Spouse, id))
}

// SisterInLaw returns the daughters of the spouse's mother, leaving out the
// spouse.
func (r *Resolver) SisterInLaw(id family.PersonID) []*family.Person {
	motherInLaw, ok := r.SpouseMother(id)
	if !ok {
		return []*family.Person{}
	}
	return r.childrenOf(motherInLaw.ID(), family.Female, r.edge(r.tree.Spouse, id))
}

// Son returns the male children.
func (r *Resolver) Son(id family.PersonID) []*family.Person {
	return r.childrenOf(id, family.Male, "")
}

// Daughter returns the female children.
func (r *Resolver) Daughter(id family.PersonID) []*family.Person {
	return r.childrenOf(id, family.Female, "")
}

// Siblings returns the mother's children except every occurrence of the
// person itself.
func (r *Resolver) Siblings(id family.PersonID) []*family.Person {
	mother, ok := r.tree.Mother(id)
	if !ok {
		return []*family.Person{}
	}
	result := []*family.Person{}
	for _, child := range r.tree.Children(mother.ID()) {
		if child.ID() != id {
			result = append(result, child)
		}
	}
	return result
}

// childrenOf filters the children of parent by gender and drops any child
// whose id equals exclude. An empty exclude drops nobody.
func (r *Resolver) childrenOf(parent family.PersonID, gender family.Gender, exclude family.PersonID) []*family.Person {
	result := []*family.Person{}
	for _, child := range r.tree.Children(parent) {
		if child.Gender() != gender {
			continue
		}
		if exclude != "" && child.ID() == exclude {
			continue
		}
		result = append(result, child)
	}
	return result
}

func (r *Resolver) edge(follow func(family.PersonID) (*family.Person, bool), id family.PersonID) family.PersonID {
	p, ok := follow(id)
	if !ok {
		return ""
	}
	return p.ID()
}
