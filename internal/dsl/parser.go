package dsl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parser reads family documents from disk.
type Parser struct {
	filePath string
}

// NewParser creates a parser for filePath.
func NewParser(filePath string) *Parser {
	return &Parser{
		filePath: filePath,
	}
}

// Parse reads and decodes the YAML document.
func (p *Parser) Parse() (*FamilyDocument, error) {
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read family file: %w", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes a YAML document held in memory.
func ParseBytes(data []byte) (*FamilyDocument, error) {
	var doc FamilyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}
