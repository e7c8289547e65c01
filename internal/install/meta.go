package install

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"openskills/internal/skills"
	"openskills/internal/utils"
)

// MetaFile is written into every copied skill.
const MetaFile = ".openskills.json"

// SkillMeta records where an installed skill came from.
type SkillMeta struct {
	Source      string    `json:"source"`
	Type        string    `json:"type"`
	InstalledAt time.Time `json:"installed_at"`
	RepoURL     string    `json:"repo_url,omitempty"`
	Subpath     string    `json:"subpath,omitempty"`
	Commit      string    `json:"commit,omitempty"`
	SkillHash   string    `json:"skill_hash,omitempty"` // sha256:<hex> of SKILL.md
}

// newMeta describes skill as installed from res.
func newMeta(res *DiscoveryResult, skill SkillInfo) *SkillMeta {
	src := res.Source
	meta := &SkillMeta{
		Source:      src.Raw,
		Type:        src.Kind.String(),
		InstalledAt: time.Now().UTC(),
		Commit:      res.CommitHash,
	}
	if src.IsGit() {
		meta.RepoURL = src.CloneURL
		meta.Subpath = joinSubpath(src.Subpath, skill.Path)
	}
	return meta
}

func joinSubpath(base, rel string) string {
	if rel == "." || rel == "" {
		return base
	}
	if base == "" {
		return rel
	}
	return base + "/" + rel
}

// WriteMeta stores meta in skillDir, filling in the SKILL.md hash.
func WriteMeta(skillDir string, meta *SkillMeta) error {
	if h, err := utils.ContentHash(skillDir, skills.SkillFile); err == nil {
		meta.SkillHash = h
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(skillDir, MetaFile), data, 0644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// ReadMeta loads the metadata of an installed skill. It returns nil, nil
// for skills installed without it (symlinks, manual copies).
func ReadMeta(skillDir string) (*SkillMeta, error) {
	data, err := os.ReadFile(filepath.Join(skillDir, MetaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var meta SkillMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &meta, nil
}

// Modified reports whether SKILL.md changed since install. Skills without a
// recorded hash are never reported.
func (m *SkillMeta) Modified(skillDir string) bool {
	if m == nil || m.SkillHash == "" {
		return false
	}
	if _, err := os.Stat(filepath.Join(skillDir, skills.SkillFile)); err != nil {
		return false
	}
	return !utils.SameContent(skillDir, skills.SkillFile, m.SkillHash)
}
