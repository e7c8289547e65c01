package main

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mattn/go-runewidth"

	"openskills/internal/install"
	"openskills/internal/prompt"
	"openskills/internal/skills"
	"openskills/internal/utils"
)

const (
	nameColumn     = 25
	descriptionMax = 70
)

var (
	nameStyle    = lipgloss.NewStyle().Bold(true)
	projectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	globalStyle  = lipgloss.NewStyle().Faint(true)
)

func padName(name string) string {
	return runewidth.FillRight(name, nameColumn)
}

func scopeTag(scope skills.Scope) string {
	if scope == skills.ScopeProject {
		return projectStyle.Render("(project)")
	}
	return globalStyle.Render("(global)")
}

func shortDescription(desc string) string {
	return ansi.Truncate(strings.TrimSpace(desc), descriptionMax, "…")
}

// skillChoices lists installed skills for manage and sync. checked decides
// the initial state of each row.
func skillChoices(list []skills.Skill, checked func(skills.Skill) bool) []prompt.Item[skills.Skill] {
	items := make([]prompt.Item[skills.Skill], 0, len(list))
	for _, s := range list {
		items = append(items, prompt.Choice[skills.Skill]{
			Value:       s,
			Name:        nameStyle.Render(padName(s.Name)) + " " + scopeTag(s.Location),
			Short:       s.Name,
			Description: shortDescription(s.Description),
			Checked:     checked != nil && checked(s),
		})
	}
	return items
}

// syncPreselect checks skills already listed in the agents file, or every
// project skill when the file lists none.
func syncPreselect(current []string) func(skills.Skill) bool {
	return func(s skills.Skill) bool {
		if len(current) == 0 {
			return s.Location == skills.ScopeProject
		}
		return slices.Contains(current, s.Name)
	}
}

// installChoices offers every discovered skill, pre-checked. Skills without
// frontmatter are shown but can not be selected.
func installChoices(list []install.SkillInfo) []prompt.Item[install.SkillInfo] {
	items := make([]prompt.Item[install.SkillInfo], 0, len(list))
	for _, s := range list {
		c := prompt.Choice[install.SkillInfo]{
			Value:       s,
			Name:        nameStyle.Render(padName(s.Name)) + " " + globalStyle.Render(s.Path),
			Short:       s.Name,
			Description: shortDescription(s.Description),
			Checked:     s.Valid,
		}
		if !s.Valid {
			c.DisabledReason = "(invalid SKILL.md)"
		}
		items = append(items, c)
	}
	return items
}

// scopeOf maps the directory a skill was found in back to its scope.
func scopeOf(source string) (skills.SearchDir, bool) {
	for _, d := range skills.SearchDirs() {
		if utils.PathsEqual(d.Path, source) {
			return d, true
		}
	}
	return skills.SearchDir{}, false
}

// suggestNames returns up to three installed names close to query.
func suggestNames(query string, names []string) []string {
	type candidate struct {
		name string
		dist int
	}
	q := strings.ToLower(query)
	limit := max(2, len(q)/3)

	var found []candidate
	for _, n := range names {
		d := fuzzy.LevenshteinDistance(q, strings.ToLower(n))
		if fuzzy.MatchFold(query, n) || fuzzy.MatchFold(n, query) || d <= limit {
			found = append(found, candidate{n, d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})

	var out []string
	for i := 0; i < len(found) && i < 3; i++ {
		out = append(out, found[i].name)
	}
	return out
}

func countLabel(n int, noun string) string {
	return fmt.Sprintf("%d %s(s)", n, noun)
}
