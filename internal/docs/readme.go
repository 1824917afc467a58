// Package docs renders the README command reference from the registry.
package docs

import (
	"bytes"
	"cmp"
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"text/template"

	"croissant-bot/internal/command"
	v "croissant-bot/internal/version"
	"croissant-bot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

//go:embed README.md.tmpl
var readmeTemplate string

type Entry struct {
	Display     string
	Description string
}

type Section struct {
	Category string
	Commands []Entry
}

// Sections groups the registered commands by category. Categories are ordered
// by weight (lower first), commands by name.
func Sections(reg *cmd.Registry, categoryWeights map[string]int) []Section {
	commands := reg.GetAll()
	slices.SortStableFunc(commands, func(a, b cmd.Command) int {
		return cmp.Or(
			cmp.Compare(categoryWeights[command.CategoryOf(a)], categoryWeights[command.CategoryOf(b)]),
			cmp.Compare(command.CategoryOf(a), command.CategoryOf(b)),
			cmp.Compare(a.Name(), b.Name()),
		)
	})

	var sections []Section
	for _, c := range commands {
		def := command.Definition(c)
		if def == nil {
			continue
		}
		cat := command.CategoryOf(c)
		if len(sections) == 0 || sections[len(sections)-1].Category != cat {
			sections = append(sections, Section{Category: cat})
		}

		display := def.Name
		if def.Type == discordgo.ChatApplicationCommand {
			display = "/" + display
		} else {
			display += " (context menu)"
		}
		last := &sections[len(sections)-1]
		last.Commands = append(last.Commands, Entry{Display: display, Description: cmp.Or(def.Description, c.Description())})
	}
	return sections
}

// Render writes the README for reg to w.
func Render(w io.Writer, reg *cmd.Registry, categoryWeights map[string]int) error {
	tmpl, err := template.New("readme").Parse(readmeTemplate)
	if err != nil {
		return fmt.Errorf("parse readme template: %w", err)
	}
	data := struct {
		AppName     string
		Description string
		Sections    []Section
	}{
		AppName:     v.AppName,
		Description: v.AppDescription,
		Sections:    Sections(reg, categoryWeights),
	}
	return tmpl.Execute(w, data)
}

// UpdateReadme regenerates the README at outPath.
func UpdateReadme(reg *cmd.Registry, categoryWeights map[string]int, outPath string) error {
	var buf bytes.Buffer
	if err := Render(&buf, reg, categoryWeights); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Printf("[INFO] %s updated with current commands", outPath)
	return nil
}
