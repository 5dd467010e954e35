package main

import (
	"fmt"
)

// ListSourcesCmd defines the list-sources subcommand.
type ListSourcesCmd struct{}

// Run executes the list-sources command.
func (cmd *ListSourcesCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	for _, s := range a.library.Sources() {
		fmt.Println(s.String())
	}
	return nil
}

// ListTemplatesCmd defines the list-templates subcommand.
type ListTemplatesCmd struct{}

// Run executes the list-templates command.
func (cmd *ListTemplatesCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	names, err := a.library.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		a.log.Warn("No templates found; run update-sources to fetch the git sources")
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// UpdateSourcesCmd defines the update-sources subcommand.
type UpdateSourcesCmd struct{}

// Run executes the update-sources command.
func (cmd *UpdateSourcesCmd) Run(g *Globals) error {
	a, err := newApp(g)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext(a.log)
	defer cancel()

	if err := a.library.Update(ctx); err != nil {
		return err
	}
	a.log.Info("All sources are up to date")
	return nil
}
