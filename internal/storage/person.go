package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"familytree/internal/family"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a person record does not exist.
var ErrNotFound = errors.New("person record not found")

// PersonRecord is the on-disk form of a person and its stored edges.
type PersonRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Mother    string    `json:"mother,omitempty"`
	Father    string    `json:"father,omitempty"`
	Spouse    string    `json:"spouse,omitempty"`
	Children  []string  `json:"children"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewID returns a fresh person id.
func NewID() string {
	return uuid.New().String()
}

// RecordOf captures the current state of a person in tree.
func RecordOf(tree *family.Tree, id family.PersonID) (PersonRecord, bool) {
	p, ok := tree.Person(id)
	if !ok {
		return PersonRecord{}, false
	}
	edges, _ := tree.Edges(id)
	children := make([]string, 0, len(edges.Children))
	for _, child := range edges.Children {
		children = append(children, string(child))
	}
	return PersonRecord{
		ID:       string(p.ID()),
		Name:     p.Name(),
		Gender:   p.Gender().String(),
		Mother:   string(edges.Mother),
		Father:   string(edges.Father),
		Spouse:   string(edges.Spouse),
		Children: children,
	}, true
}

// PersonStorage keeps one JSON file per person.
type PersonStorage struct {
	pathManager *PathManager
	mu          sync.RWMutex
}

// NewPersonStorage creates a person storage.
func NewPersonStorage(pathManager *PathManager) *PersonStorage {
	return &PersonStorage{
		pathManager: pathManager,
	}
}

// SavePerson writes a record, keeping the creation time of an existing one.
func (s *PersonStorage) SavePerson(record PersonRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	existing, err := s.readRecord(s.pathManager.GetPersonPath(record.ID))
	switch {
	case err == nil:
		record.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
	default:
		return err
	}
	record.UpdatedAt = now
	if record.Children == nil {
		record.Children = []string{}
	}

	dir := s.pathManager.GetPeopleDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return s.writeRecord(s.pathManager.GetPersonPath(record.ID), record)
}

// GetPerson reads the record of id.
func (s *PersonStorage) GetPerson(id string) (PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readRecord(s.pathManager.GetPersonPath(id))
}

// DeletePerson removes the record of id.
func (s *PersonStorage) DeletePerson(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathManager.GetPersonPath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: '%s'", ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// ListPeople returns every record ordered by creation time, then id.
func (s *PersonStorage) ListPeople() ([]PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := s.pathManager.GetPeopleDir()
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []PersonRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	records := []PersonRecord{}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		record, err := s.readRecord(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

// SaveTree writes a record for every person of tree. Creation times are
// spaced by insertion order so ListPeople returns people in the order the
// tree holds them.
func (s *PersonStorage) SaveTree(tree *family.Tree) error {
	base := time.Now().UTC()
	for i, p := range tree.People() {
		record, _ := RecordOf(tree, p.ID())
		record.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
		if err := s.SavePerson(record); err != nil {
			return fmt.Errorf("failed to save person '%s': %w", p.ID(), err)
		}
	}
	return nil
}

// LoadTree rebuilds a tree from the stored records. Edges go through the
// family mutation API, so an inconsistent record fails the load.
func (s *PersonStorage) LoadTree() (*family.Tree, error) {
	records, err := s.ListPeople()
	if err != nil {
		return nil, err
	}

	tree := family.NewTree()
	for _, r := range records {
		if _, err := tree.Create(family.PersonID(r.ID), r.Name, r.Gender); err != nil {
			return nil, fmt.Errorf("failed to restore person '%s': %w", r.ID, err)
		}
	}

	for _, r := range records {
		id := family.PersonID(r.ID)
		if err := restoreEdges(tree, id, r); err != nil {
			return nil, fmt.Errorf("failed to restore person '%s': %w", r.ID, err)
		}
	}
	return tree, nil
}

func restoreEdges(tree *family.Tree, id family.PersonID, r PersonRecord) error {
	if r.Mother != "" {
		if err := tree.SetMother(id, family.PersonID(r.Mother)); err != nil {
			return err
		}
	}
	if r.Father != "" {
		if err := tree.SetFather(id, family.PersonID(r.Father)); err != nil {
			return err
		}
	}
	if r.Spouse != "" {
		if err := tree.SetSpouse(id, family.PersonID(r.Spouse)); err != nil {
			return err
		}
	}
	for _, child := range r.Children {
		if err := tree.AddChild(id, family.PersonID(child)); err != nil {
			return err
		}
	}
	return nil
}

func (s *PersonStorage) readRecord(path string) (PersonRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return PersonRecord{}, ErrNotFound
		}
		return PersonRecord{}, fmt.Errorf("failed to read file: %w", err)
	}

	var record PersonRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return PersonRecord{}, fmt.Errorf("failed to parse JSON %s: %w", filepath.Base(path), err)
	}
	return record, nil
}

func (s *PersonStorage) writeRecord(path string, record PersonRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
