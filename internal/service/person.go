package service

import (
	"fmt"
	"log/slog"
	"sync"

	"familytree/internal/family"
	"familytree/internal/storage"
)

// PersonView is the external form of a person with its stored edges.
type PersonView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Gender   string   `json:"gender"`
	Mother   string   `json:"mother,omitempty"`
	Father   string   `json:"father,omitempty"`
	Spouse   string   `json:"spouse,omitempty"`
	Children []string `json:"children"`
}

func viewOf(tree *family.Tree, id family.PersonID) (PersonView, bool) {
	record, ok := storage.RecordOf(tree, id)
	if !ok {
		return PersonView{}, false
	}
	return PersonView{
		ID:       record.ID,
		Name:     record.Name,
		Gender:   record.Gender,
		Mother:   record.Mother,
		Father:   record.Father,
		Spouse:   record.Spouse,
		Children: record.Children,
	}, true
}

func viewsOf(tree *family.Tree, people []*family.Person) []PersonView {
	result := make([]PersonView, 0, len(people))
	for _, p := range people {
		if view, ok := viewOf(tree, p.ID()); ok {
			result = append(result, view)
		}
	}
	return result
}

// PersonService creates people and wires them into the tree. When a storage
// is configured every change is written through to it.
type PersonService struct {
	tree      *family.Tree
	storage   *storage.PersonStorage
	validator *RequestValidator
	logger    *slog.Logger
	// writes serialises persist-then-apply so the stored record and the
	// tree move together.
	writes sync.Mutex
}

// NewPersonService creates a person service. personStorage may be nil.
func NewPersonService(tree *family.Tree, personStorage *storage.PersonStorage, validator *RequestValidator, logger *slog.Logger) *PersonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PersonService{
		tree:      tree,
		storage:   personStorage,
		validator: validator,
		logger:    logger,
	}
}

// CreatePerson adds a person to the tree. The record is stored before the
// person joins the tree, so a storage failure leaves both unchanged.
func (s *PersonService) CreatePerson(req CreatePersonRequest) (PersonView, error) {
	if err := s.validator.Validate(req); err != nil {
		return PersonView{}, err
	}
	if req.ID == "" {
		req.ID = storage.NewID()
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	p, err := family.NewPerson(family.PersonID(req.ID), req.Name, req.Gender)
	if err == nil {
		if _, exists := s.tree.Person(p.ID()); exists {
			err = fmt.Errorf("%w: '%s'", family.ErrDuplicatePerson, p.ID())
		}
	}
	if err != nil {
		recordMutation("create", err)
		return PersonView{}, err
	}

	if err := s.save(storage.PersonRecord{
		ID:       string(p.ID()),
		Name:     p.Name(),
		Gender:   p.Gender().String(),
		Children: []string{},
	}); err != nil {
		recordMutation("create", err)
		return PersonView{}, err
	}

	if err := s.tree.Add(p); err != nil {
		recordMutation("create", err)
		s.discard(string(p.ID()))
		return PersonView{}, err
	}
	recordMutation("create", nil)

	s.logger.Info("person created", "id", p.ID(), "gender", p.Gender())
	view, _ := viewOf(s.tree, p.ID())
	return view, nil
}

// GetPerson returns one person.
func (s *PersonService) GetPerson(id string) (PersonView, error) {
	view, ok := viewOf(s.tree, family.PersonID(id))
	if !ok {
		return PersonView{}, fmt.Errorf("%w: '%s'", family.ErrPersonNotFound, id)
	}
	return view, nil
}

// ListPeople returns a page of people in insertion order and the total count.
func (s *PersonService) ListPeople(offset, limit int) ([]PersonView, int64, error) {
	verr := &ValidationError{}
	if offset < 0 {
		verr.Fields = append(verr.Fields, FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if limit < 0 {
		verr.Fields = append(verr.Fields, FieldError{Field: "limit", Message: "must be >= 0"})
	}
	if len(verr.Fields) > 0 {
		return nil, 0, verr
	}

	people := s.tree.People()
	total := int64(len(people))
	if offset >= len(people) {
		return []PersonView{}, total, nil
	}
	end := len(people)
	if limit < end-offset {
		end = offset + limit
	}
	return viewsOf(s.tree, people[offset:end]), total, nil
}

// SetMother sets the mother of id.
func (s *PersonService) SetMother(id string, req LinkRequest) (PersonView, error) {
	return s.link(family.EdgeMother, "set_mother", id, req)
}

// SetFather sets the father of id.
func (s *PersonService) SetFather(id string, req LinkRequest) (PersonView, error) {
	return s.link(family.EdgeFather, "set_father", id, req)
}

// SetSpouse sets the spouse of id. Only id's side of the marriage changes.
func (s *PersonService) SetSpouse(id string, req LinkRequest) (PersonView, error) {
	return s.link(family.EdgeSpouse, "set_spouse", id, req)
}

// AddChild appends a child to id. The child's parents are not touched.
func (s *PersonService) AddChild(id string, req LinkRequest) (PersonView, error) {
	return s.link(family.EdgeChild, "add_child", id, req)
}

// link checks the edge, stores the record as it will look afterwards and
// only then changes the tree.
func (s *PersonService) link(edge family.Edge, operation, id string, req LinkRequest) (PersonView, error) {
	if err := s.validator.Validate(req); err != nil {
		return PersonView{}, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	subject := family.PersonID(id)
	other := family.PersonID(req.ID)
	if err := s.tree.Check(edge, subject, other); err != nil {
		recordMutation(operation, err)
		s.logger.Debug("mutation rejected", "operation", operation, "id", id, "other", req.ID, "error", err)
		return PersonView{}, err
	}

	before, _ := storage.RecordOf(s.tree, subject)
	after := before
	after.Children = append([]string(nil), before.Children...)
	switch edge {
	case family.EdgeMother:
		after.Mother = req.ID
	case family.EdgeFather:
		after.Father = req.ID
	case family.EdgeSpouse:
		after.Spouse = req.ID
	case family.EdgeChild:
		after.Children = append(after.Children, req.ID)
	}

	if err := s.save(after); err != nil {
		recordMutation(operation, err)
		return PersonView{}, err
	}

	if err := s.tree.Link(edge, subject, other); err != nil {
		recordMutation(operation, err)
		if restoreErr := s.save(before); restoreErr != nil {
			s.logger.Error("failed to restore person record", "id", id, "error", restoreErr)
		}
		return PersonView{}, err
	}
	recordMutation(operation, nil)

	s.logger.Info("person updated", "operation", operation, "id", id, "other", req.ID)
	view, _ := viewOf(s.tree, subject)
	return view, nil
}

func (s *PersonService) save(record storage.PersonRecord) error {
	if s.storage == nil {
		return nil
	}
	if err := s.storage.SavePerson(record); err != nil {
		s.logger.Error("failed to persist person", "id", record.ID, "error", err)
		return fmt.Errorf("failed to persist person '%s': %w", record.ID, err)
	}
	return nil
}

// discard removes a record written for a person that never joined the tree.
func (s *PersonService) discard(id string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.DeletePerson(id); err != nil {
		s.logger.Error("failed to discard person record", "id", id, "error", err)
	}
}
