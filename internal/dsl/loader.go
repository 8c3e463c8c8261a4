package dsl

import (
	"fmt"
	"sync"

	"familytree/internal/family"
)

// Loader reads a family document and keeps the tree built from it.
type Loader struct {
	parser *Parser
	doc    *FamilyDocument
	tree   *family.Tree
	mu     sync.RWMutex
}

// NewLoader creates a loader for the document at filePath.
func NewLoader(filePath string) *Loader {
	return &Loader{
		parser: NewParser(filePath),
	}
}

// Load parses, validates and builds the family tree. On failure the tree
// and document of the previous successful Load are kept.
func (l *Loader) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	doc, err := l.parser.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse family document: %w", err)
	}

	if err := NewValidator(doc).Validate(); err != nil {
		return fmt.Errorf("family document validation failed: %w", err)
	}

	tree, err := Build(doc)
	if err != nil {
		return err
	}

	l.doc = doc
	l.tree = tree
	return nil
}

// Tree returns the tree built by the last successful Load.
func (l *Loader) Tree() *family.Tree {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree
}

// Document returns the document read by the last successful Load.
func (l *Loader) Document() *FamilyDocument {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doc
}

// Build creates a tree from doc. Everyone is created first so edges can
// point forward in the document; edges are then applied person by person
// in document order.
func Build(doc *FamilyDocument) (*family.Tree, error) {
	tree := family.NewTree()
	for _, p := range doc.People {
		if _, err := tree.Create(family.PersonID(p.ID), p.Name, p.Gender); err != nil {
			return nil, err
		}
	}

	for _, p := range doc.People {
		id := family.PersonID(p.ID)
		edges := []struct {
			edge   family.Edge
			others []string
		}{
			{family.EdgeMother, []string{p.Mother}},
			{family.EdgeFather, []string{p.Father}},
			{family.EdgeSpouse, []string{p.Spouse}},
			{family.EdgeChild, p.Children},
		}
		for _, e := range edges {
			for _, other := range e.others {
				if other == "" {
					continue
				}
				if err := tree.Link(e.edge, id, family.PersonID(other)); err != nil {
					return nil, fmt.Errorf("person '%s': %w", p.ID, err)
				}
			}
		}
	}
	return tree, nil
}
