package install

// marketplaceSkills are the skill names published in Anthropic's skills
// marketplace. A global install under one of these names is shadowed when
// the marketplace plugin is enabled.
var marketplaceSkills = map[string]bool{
	"algorithmic-art":       true,
	"artifacts-builder":     true,
	"brand-guidelines":      true,
	"canvas-design":         true,
	"docx":                  true,
	"frontend-design":       true,
	"internal-comms":        true,
	"mcp-builder":           true,
	"pdf":                   true,
	"pptx":                  true,
	"skill-creator":         true,
	"slack-gif-creator":     true,
	"template-skill":        true,
	"theme-factory":         true,
	"web-artifacts-builder": true,
	"webapp-testing":        true,
	"xlsx":                  true,
}

// IsMarketplaceSkill reports whether name collides with a marketplace skill.
func IsMarketplaceSkill(name string) bool {
	return marketplaceSkills[name]
}
