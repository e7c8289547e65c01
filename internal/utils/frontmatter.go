package utils

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractYAMLField returns the trimmed value of the first "field: value" line
// in content, or "" when there is none.
func ExtractYAMLField(content, field string) string {
	re := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(field) + `:\s*(.+)$`)
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// HasValidFrontmatter reports whether content opens with a --- delimiter.
func HasValidFrontmatter(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "---")
}

// isYAMLBlockIndicator returns true for YAML block scalar indicators (>, >-, >+, |, |-, |+).
func isYAMLBlockIndicator(s string) bool {
	switch s {
	case ">", ">-", ">+", "|", "|-", "|+":
		return true
	}
	return false
}

// extractFrontmatterRaw returns the text between the first pair of ---
// delimiters.
func extractFrontmatterRaw(content string) string {
	scanner := bufio.NewScanner(strings.NewReader(content))
	inFrontmatter := false
	var lines []string

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			if inFrontmatter {
				break
			}
			inFrontmatter = true
			continue
		}
		if inFrontmatter {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// FrontmatterFields parses the frontmatter block of content with a YAML
// decoder and returns the scalar values of the requested fields. Fields
// that are missing or not scalars are left out.
func FrontmatterFields(content string, fields ...string) map[string]string {
	result := make(map[string]string, len(fields))
	raw := extractFrontmatterRaw(content)
	if raw == "" || len(fields) == 0 {
		return result
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fm); err != nil {
		return result
	}

	for _, field := range fields {
		switch v := fm[field].(type) {
		case string:
			result[field] = strings.TrimSpace(v)
		case int:
			result[field] = fmt.Sprintf("%d", v)
		case float64:
			result[field] = fmt.Sprintf("%g", v)
		case bool:
			result[field] = fmt.Sprintf("%t", v)
		}
	}
	return result
}

// ParseFrontmatterFields reads a SKILL.md file once and returns the values
// of several frontmatter fields.
func ParseFrontmatterFields(filePath string, fields ...string) map[string]string {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return map[string]string{}
	}
	return FrontmatterFields(string(data), fields...)
}

// ParseFrontmatterField reads a SKILL.md file and extracts the value of a
// given frontmatter field. Quoted values are unquoted and block scalars
// (>, |) are folded onto one line.
func ParseFrontmatterField(filePath, field string) string {
	file, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	inFrontmatter := false
	prefix := field + ":"

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "---" {
			if inFrontmatter {
				break
			}
			inFrontmatter = true
			continue
		}
		if !inFrontmatter || !strings.HasPrefix(line, prefix) {
			continue
		}

		val := strings.TrimSpace(strings.TrimPrefix(line, prefix))
		if !isYAMLBlockIndicator(val) {
			return strings.Trim(val, `"'`)
		}

		var block []string
		for scanner.Scan() {
			next := scanner.Text()
			if strings.TrimSpace(next) == "---" {
				break
			}
			if len(next) == 0 || (next[0] != ' ' && next[0] != '\t') {
				break
			}
			block = append(block, strings.TrimSpace(next))
		}
		return strings.Join(block, " ")
	}
	return ""
}
