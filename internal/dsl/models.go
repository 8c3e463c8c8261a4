package dsl

// FamilyDocument is a complete family description.
type FamilyDocument struct {
	Version   string         `yaml:"version" validate:"required"`
	Namespace string         `yaml:"namespace,omitempty"`
	People    []PersonRecord `yaml:"people" validate:"dive"`
}

// PersonRecord describes one person and the edges stored on them. Edges
// refer to other records by id.
type PersonRecord struct {
	ID       string   `yaml:"id" validate:"required"`
	Name     string   `yaml:"name" validate:"required"`
	Gender   string   `yaml:"gender" validate:"required,oneof=male female"`
	Mother   string   `yaml:"mother,omitempty"`
	Father   string   `yaml:"father,omitempty"`
	Spouse   string   `yaml:"spouse,omitempty"`
	Children []string `yaml:"children,omitempty"`
}
