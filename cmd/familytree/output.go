package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"familytree/internal/family"
	"familytree/internal/relation"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	noneStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))
)

type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{w: w, json: asJSON}
}

type personJSON struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

func toJSON(p *family.Person) *personJSON {
	if p == nil {
		return nil
	}
	return &personJSON{ID: string(p.ID()), Name: p.Name(), Gender: p.Gender().String()}
}

func (pr *printer) encode(v interface{}) error {
	enc := json.NewEncoder(pr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (pr *printer) relatives(id, relationship string, people []*family.Person) error {
	if pr.json {
		items := make([]*personJSON, 0, len(people))
		for _, p := range people {
			items = append(items, toJSON(p))
		}
		return pr.encode(map[string]interface{}{
			"person":       id,
			"relationship": relationship,
			"relatives":    items,
		})
	}

	fmt.Fprintln(pr.w, titleStyle.Render(fmt.Sprintf("%s of %s", relationship, id)))
	if len(people) == 0 {
		fmt.Fprintln(pr.w, noneStyle.Render("NONE"))
		return nil
	}
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name())
	}
	fmt.Fprintln(pr.w, strings.Join(names, " "))
	return nil
}

func (pr *printer) person(tree *family.Tree, r *relation.Resolver, p *family.Person) error {
	mother, _ := tree.Mother(p.ID())
	father, _ := tree.Father(p.ID())
	spouse, _ := tree.Spouse(p.ID())
	children := tree.Children(p.ID())

	relatives := make(map[relation.Relative]*family.Person)
	for _, name := range relation.Relatives() {
		if rel, ok := r.Relative(p.ID(), name); ok {
			relatives[name] = rel
		}
	}

	if pr.json {
		kids := make([]*personJSON, 0, len(children))
		for _, c := range children {
			kids = append(kids, toJSON(c))
		}
		rels := make(map[string]*personJSON, len(relatives))
		for name, rel := range relatives {
			rels[string(name)] = toJSON(rel)
		}
		return pr.encode(map[string]interface{}{
			"person":    toJSON(p),
			"mother":    toJSON(mother),
			"father":    toJSON(father),
			"spouse":    toJSON(spouse),
			"children":  kids,
			"relatives": rels,
		})
	}

	fmt.Fprintln(pr.w, titleStyle.Render(fmt.Sprintf("%s (%s, %s)", p.Name(), p.ID(), p.Gender())))
	pr.line("mother", displayName(mother))
	pr.line("father", displayName(father))
	pr.line("spouse", displayName(spouse))
	childNames := make([]string, 0, len(children))
	for _, c := range children {
		childNames = append(childNames, c.Name())
	}
	pr.line("children", strings.Join(childNames, " "))
	for _, rel := range relation.Relatives() {
		pr.line(string(rel), displayName(relatives[rel]))
	}
	return nil
}

func (pr *printer) kinds(kinds []relation.Kind) error {
	if pr.json {
		return pr.encode(kinds)
	}
	for _, k := range kinds {
		fmt.Fprintln(pr.w, k)
	}
	return nil
}

func (pr *printer) valid(path, namespace string, people int) error {
	if namespace == "" {
		namespace = "default"
	}
	if pr.json {
		return pr.encode(map[string]interface{}{"file": path, "namespace": namespace, "valid": true, "people": people})
	}
	fmt.Fprintf(pr.w, "%s: ok, namespace %s, %d people\n", path, namespace, people)
	return nil
}

func (pr *printer) line(label, value string) {
	if value == "" {
		value = noneStyle.Render("NONE")
	}
	fmt.Fprintf(pr.w, "  %s %s\n", labelStyle.Render(label+":"), value)
}

func displayName(p *family.Person) string {
	if p == nil {
		return ""
	}
	return p.Name()
}
