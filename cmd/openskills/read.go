package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"openskills/internal/skills"
	"openskills/internal/ui"
)

func newReadCmd() *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:     "read <skill-name|path>...",
		Aliases: []string{"load"},
		Short:   "Print skills to stdout (for AI agents)",
		Long: `Print one or more skills in the format agents expect. Arguments are
installed skill names, paths to a skill directory or SKILL.md, or file:// URIs.
Comma-separated names are accepted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range splitNames(args) {
				if err := readSkill(ui.Out, cmd.ErrOrStderr(), name, render); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render the markdown for a terminal")
	return cmd
}

// splitNames flattens "a,b c" into [a b c].
func splitNames(args []string) []string {
	var out []string
	for _, a := range args {
		for _, n := range strings.Split(a, ",") {
			if n = strings.TrimSpace(n); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

func locateSkill(name string) (*skills.Location, error) {
	if skills.LooksLikePath(name) {
		return skills.FindByPath(name)
	}
	return skills.Find(name)
}

func readSkill(out, errOut io.Writer, name string, render bool) error {
	loc, err := locateSkill(name)
	if errors.Is(err, skills.ErrNotFound) {
		printNotFound(errOut, name)
		return fmt.Errorf("skill '%s' not found", name)
	}
	if err != nil {
		return err
	}

	data, err := os.ReadFile(loc.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", loc.Path, err)
	}
	content := string(data)
	if render {
		if content, err = renderMarkdown(content); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Reading: %s\n", name)
	fmt.Fprintf(out, "Base directory: %s\n\n", loc.BaseDir)
	fmt.Fprintln(out, content)
	fmt.Fprintf(out, "\nSkill read: %s\n", name)
	return nil
}

func renderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func printNotFound(w io.Writer, name string) {
	if s := suggestNames(name, skills.Names(skills.FindAll())); len(s) > 0 {
		fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(s, ", "))
	}
	fmt.Fprintln(w, "\nSearched:")
	for _, d := range skills.SearchDirs() {
		fmt.Fprintf(w, "  %s\n", d.Label())
	}
	fmt.Fprintln(w, "\nInstall skills: openskills install owner/repo")
}
