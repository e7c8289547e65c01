// Package agentsmd renders the skills listing injected into an agent
// instructions file such as AGENTS.md, and edits that section in place.
package agentsmd

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"openskills/internal/skills"
)

const (
	TableStart     = "<!-- SKILLS_TABLE_START -->"
	TableEnd       = "<!-- SKILLS_TABLE_END -->"
	RemovedComment = "<!-- Skills section removed -->"
)

var (
	systemRe = regexp.MustCompile(`(?s)<skills_system[^>]*>.*?</skills_system>`)
	tableRe  = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(TableStart) + `.*?` + regexp.QuoteMeta(TableEnd))
	nameRe   = regexp.MustCompile(`<name>([^<]*)</name>`)
)

const usage = `<usage>
Skills provide specialized procedural guidance for complex tasks.
Progressive disclosure: Skills expand detailed instructions only when loaded.
Check available skills before starting complex work.

Load: openskills read <skill-name>
List: openskills list
Priority: .agent/skills/ (project), ~/.agent/skills/, .claude/skills/ (project), ~/.claude/skills/

Rules:
- Load only relevant skills for current task
- Don't load skills already in context
- Each load is stateless

Resource resolution:
- Base directory provided in read output
- Relative paths in SKILL.md resolve from base directory
- Example: references/guide.md -> {base-directory}/references/guide.md
</usage>`

// GenerateSkillsXML renders the full <skills_system> block for list.
func GenerateSkillsXML(list []skills.Skill) string {
	tags := make([]string, 0, len(list))
	for _, s := range list {
		tags = append(tags, fmt.Sprintf("<skill>\n<name>%s</name>\n<description>%s</description>\n<location>%s</location>\n</skill>",
			html.EscapeString(s.Name), html.EscapeString(s.Description), s.Location))
	}

	var b strings.Builder
	b.WriteString("<skills_system priority=\"1\">\n\n")
	b.WriteString("## Available Skills\n\n")
	b.WriteString(TableStart + "\n")
	b.WriteString(usage + "\n\n")
	b.WriteString("<available_skills>\n\n")
	b.WriteString(strings.Join(tags, "\n\n"))
	b.WriteString("\n\n</available_skills>\n")
	b.WriteString(TableEnd + "\n\n")
	b.WriteString("</skills_system>")
	return b.String()
}

// HasMarkers reports whether content already carries a skills section.
func HasMarkers(content string) bool {
	return systemRe.MatchString(content) || tableRe.MatchString(content)
}

// ReplaceSkillsSection swaps the existing skills section for section, or
// appends section when content has none.
func ReplaceSkillsSection(content, section string) string {
	if loc := systemRe.FindStringIndex(content); loc != nil {
		return content[:loc[0]] + section + content[loc[1]:]
	}
	if tableRe.MatchString(content) {
		inner := tableInner(section)
		return tableRe.ReplaceAllLiteralString(content, TableStart+"\n"+inner+"\n"+TableEnd)
	}
	return strings.TrimRight(content, " \t\r\n") + "\n\n" + section + "\n"
}

// RemoveSkillsSection replaces the skills section with a marker comment.
// Content without a section is returned unchanged.
func RemoveSkillsSection(content string) string {
	if loc := systemRe.FindStringIndex(content); loc != nil {
		return content[:loc[0]] + RemovedComment + content[loc[1]:]
	}
	if tableRe.MatchString(content) {
		return tableRe.ReplaceAllLiteralString(content, TableStart+"\n"+RemovedComment+"\n"+TableEnd)
	}
	return content
}

// ParseCurrentSkills returns the skill names listed in content's section.
func ParseCurrentSkills(content string) []string {
	section := systemRe.FindString(content)
	if section == "" {
		section = tableRe.FindString(content)
	}
	var names []string
	for _, m := range nameRe.FindAllStringSubmatch(section, -1) {
		if name := strings.TrimSpace(html.UnescapeString(m[1])); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// tableInner is the part of a generated section between the table markers.
func tableInner(section string) string {
	i := strings.Index(section, TableStart)
	j := strings.Index(section, TableEnd)
	if i < 0 || j < i {
		return strings.TrimSpace(section)
	}
	return strings.TrimSpace(section[i+len(TableStart) : j])
}
