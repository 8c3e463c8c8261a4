package dsl

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	documentValidate = validator.New()
	idPattern        = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N}_.-]*$`)
)

// Validator checks a FamilyDocument before it is turned into a tree.
type Validator struct {
	doc *FamilyDocument
}

// NewValidator creates a validator for doc.
func NewValidator(doc *FamilyDocument) *Validator {
	return &Validator{
		doc: doc,
	}
}

// Validate runs the syntax checks and then the reference checks.
func (v *Validator) Validate() error {
	if err := v.validateSyntax(); err != nil {
		return err
	}
	return v.validateReferences()
}

func (v *Validator) validateSyntax() error {
	if err := documentValidate.Struct(v.doc); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("%s", describe(fieldErrs))
		}
		return err
	}

	ids := make(map[string]bool)
	for i, p := range v.doc.People {
		if !idPattern.MatchString(p.ID) {
			return fmt.Errorf("people[%d]: invalid id format '%s'", i, p.ID)
		}
		if ids[p.ID] {
			return fmt.Errorf("duplicate person id: %s", p.ID)
		}
		ids[p.ID] = true
	}
	return nil
}

func (v *Validator) validateReferences() error {
	ids := make(map[string]bool, len(v.doc.People))
	for _, p := range v.doc.People {
		ids[p.ID] = true
	}

	check := func(owner, edge, ref string) error {
		if ref != "" && !ids[ref] {
			return fmt.Errorf("person '%s': %s '%s' does not exist", owner, edge, ref)
		}
		return nil
	}

	for _, p := range v.doc.People {
		if err := check(p.ID, "mother", p.Mother); err != nil {
			return err
		}
		if err := check(p.ID, "father", p.Father); err != nil {
			return err
		}
		if err := check(p.ID, "spouse", p.Spouse); err != nil {
			return err
		}
		for _, child := range p.Children {
			if child == "" {
				return fmt.Errorf("person '%s': empty child reference", p.ID)
			}
			if err := check(p.ID, "child", child); err != nil {
				return err
			}
		}
	}
	return nil
}

// describe turns validator field errors into one readable line.
func describe(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := strings.TrimPrefix(fe.Namespace(), "FamilyDocument.")
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s: invalid value '%v', must be one of [%s]", field, fe.Value(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s: failed '%s'", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
