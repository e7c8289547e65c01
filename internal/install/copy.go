package install

import (
	"io/fs"

	"openskills/internal/utils"
)

// copySkill copies a skill directory into dst without its .git directory.
// Symlinks inside the skill are kept as links.
func copySkill(src, dst string) error {
	return utils.CopyDir(src, dst, func(_ string, d fs.DirEntry) bool {
		return d.IsDir() && d.Name() == ".git"
	})
}
