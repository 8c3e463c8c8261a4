package main

import (
	"fmt"

	"familytree/internal/dsl"
	"familytree/internal/family"
	"familytree/internal/relation"

	"github.com/spf13/cobra"
)

type options struct {
	file string
	json bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "familytree",
		Short:         "Query relationships in a family document",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "./family/family.yaml", "family document (YAML)")
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of text")

	root.AddCommand(
		newQueryCommand(opts),
		newShowCommand(opts),
		newRelationshipsCommand(opts),
		newValidateCommand(opts),
	)
	return root
}

func newQueryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "query <person-id> <relationship>",
		Short: "List the relatives of a person for one relationship",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(opts.file)
			if err != nil {
				return err
			}
			id := family.PersonID(args[0])
			if _, ok := tree.Person(id); !ok {
				return fmt.Errorf("%w: '%s'", family.ErrPersonNotFound, id)
			}

			people := relation.NewResolver(tree).Get(id, args[1])
			out := newPrinter(cmd.OutOrStdout(), opts.json)
			return out.relatives(args[0], args[1], people)
		},
	}
}

func newShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <person-id>",
		Short: "Show a person with its edges and grandparent relatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(opts.file)
			if err != nil {
				return err
			}
			id := family.PersonID(args[0])
			p, ok := tree.Person(id)
			if !ok {
				return fmt.Errorf("%w: '%s'", family.ErrPersonNotFound, id)
			}

			out := newPrinter(cmd.OutOrStdout(), opts.json)
			return out.person(tree, relation.NewResolver(tree), p)
		},
	}
}

func newRelationshipsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "relationships",
		Short: "List the relationship names accepted by query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout(), opts.json)
			return out.kinds(relation.Kinds())
		},
	}
}

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a family document parses and is consistent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := load(opts.file)
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout(), opts.json)
			return out.valid(opts.file, loader.Document().Namespace, loader.Tree().Len())
		},
	}
}

func load(path string) (*dsl.Loader, error) {
	loader := dsl.NewLoader(path)
	if err := loader.Load(); err != nil {
		return nil, err
	}
	return loader, nil
}

func loadTree(path string) (*family.Tree, error) {
	loader, err := load(path)
	if err != nil {
		return nil, err
	}
	return loader.Tree(), nil
}
