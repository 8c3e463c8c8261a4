package service

import (
	"fmt"
	"log/slog"
	"time"

	"familytree/internal/family"
	"familytree/internal/relation"
)

// RelationshipService answers derived relationship queries.
type RelationshipService struct {
	tree     *family.Tree
	resolver *relation.Resolver
	logger   *slog.Logger
}

// NewRelationshipService creates a relationship service over tree.
func NewRelationshipService(tree *family.Tree, logger *slog.Logger) *RelationshipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RelationshipService{
		tree:     tree,
		resolver: relation.NewResolver(tree),
		logger:   logger,
	}
}

// Query resolves a relationship token for a person. The person must exist;
// a token outside the vocabulary yields an empty list.
func (s *RelationshipService) Query(id, token string) ([]PersonView, error) {
	_, known := relation.ParseKind(token)
	label := relationshipLabel(token, known)

	if _, ok := s.tree.Person(family.PersonID(id)); !ok {
		relationshipQueries.WithLabelValues(label, "unknown_person").Inc()
		return nil, fmt.Errorf("%w: '%s'", family.ErrPersonNotFound, id)
	}

	start := time.Now()
	people := s.resolver.Get(family.PersonID(id), token)
	relationshipQueryDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	outcome := "found"
	if len(people) == 0 {
		outcome = "empty"
	}
	relationshipQueries.WithLabelValues(label, outcome).Inc()

	if !known {
		s.logger.Debug("unknown relationship requested", "id", id, "relationship", token)
	}
	return viewsOf(s.tree, people), nil
}

// Relative resolves a single-result relationship. A nil view means the
// relative is not recorded.
func (s *RelationshipService) Relative(id, name string) (*PersonView, error) {
	if _, ok := s.tree.Person(family.PersonID(id)); !ok {
		return nil, fmt.Errorf("%w: '%s'", family.ErrPersonNotFound, id)
	}

	rel := relation.Relative(name)
	valid := false
	for _, r := range relation.Relatives() {
		if r == rel {
			valid = true
			break
		}
	}
	if !valid {
		return nil, &ValidationError{Fields: []FieldError{{Field: "relative", Message: fmt.Sprintf("unknown relative '%s'", name)}}}
	}

	p, ok := s.resolver.Relative(family.PersonID(id), rel)
	if !ok {
		return nil, nil
	}
	view, _ := viewOf(s.tree, p.ID())
	return &view, nil
}

// ListKinds returns the relationship vocabulary.
func (s *RelationshipService) ListKinds() []string {
	kinds := relation.Kinds()
	result := make([]string, 0, len(kinds))
	for _, k := range kinds {
		result = append(result, string(k))
	}
	return result
}
