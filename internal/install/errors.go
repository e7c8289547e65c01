package install

import "errors"

var (
	ErrInvalidSource       = errors.New("invalid source")
	ErrNoSkills            = errors.New("no SKILL.md files found")
	ErrMissingSkillFile    = errors.New("SKILL.md not found")
	ErrInvalidFrontmatter  = errors.New("invalid SKILL.md (missing YAML frontmatter)")
	ErrPathEscape          = errors.New("install path escapes the skills directory")
	ErrGitMissing          = errors.New("git is not installed or not in PATH")
	ErrGit                 = errors.New("git failed")
	ErrSymlinkNeedsLocal   = errors.New("--symlink only works with local sources")
	ErrSubpathNotDirectory = errors.New("subpath is not a directory in the repository")
)
