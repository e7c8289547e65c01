package install

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"openskills/internal/utils"
)

// SourceKind tells how a skill source is fetched.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceLocal
	SourceGitHub
	SourceGitHTTPS
	SourceGitSSH
)

func (k SourceKind) String() string {
	switch k {
	case SourceLocal:
		return "local"
	case SourceGitHub:
		return "github"
	case SourceGitHTTPS:
		return "git-https"
	case SourceGitSSH:
		return "git-ssh"
	default:
		return "unknown"
	}
}

// Source is a parsed install argument.
type Source struct {
	Kind     SourceKind
	Raw      string // as typed
	CloneURL string // git sources only
	Subpath  string // path inside the repository, slash separated
	Path     string // absolute path, local sources only
	Name     string // default skill name
}

// github.com/owner/repo[/sub/path]
var githubRe = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/]+)/([^/]+?)(?:\.git)?(?:/(.+?))?/?$`)

// git@host:owner/repo[.git]
var gitSSHRe = regexp.MustCompile(`^git@([^:]+):([^/]+)/(.+?)(?:\.git)?/?$`)

// https://host/owner/repo[.git][/sub/path]
var gitHTTPSRe = regexp.MustCompile(`^https?://([^/]+)/([^/]+)/([^/]+?)(?:\.git)?(?:/(.+?))?/?$`)

// IsLocalPath reports whether input names a filesystem location.
func IsLocalPath(input string) bool {
	return strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "~") ||
		strings.HasPrefix(input, "file://") ||
		input == "." || input == ".." ||
		filepath.IsAbs(input)
}

// IsGitURL reports whether input is a full git remote URL rather than a
// shorthand.
func IsGitURL(input string) bool {
	return strings.HasPrefix(input, "git@") ||
		strings.HasPrefix(input, "git://") ||
		strings.HasPrefix(input, "ssh://") ||
		strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://")
}

// ParseSource classifies an install argument: a local directory, a GitHub
// shorthand (owner/repo[/path]), a GitHub web URL, or any other git remote.
func ParseSource(input string) (*Source, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("%w: source cannot be empty", ErrInvalidSource)
	}
	src := &Source{Raw: input}

	if IsLocalPath(input) {
		return parseLocal(input, src)
	}
	if m := githubRe.FindStringSubmatch(input); m != nil {
		return parseGitHub(m, src), nil
	}
	if m := gitSSHRe.FindStringSubmatch(input); m != nil {
		src.Kind = SourceGitSSH
		src.CloneURL = fmt.Sprintf("git@%s:%s/%s.git", m[1], m[2], m[3])
		src.Name = m[3]
		return src, nil
	}
	if IsGitURL(input) {
		return parseGitURL(input, src)
	}

	// owner/repo[/path] shorthand. A dotted first segment is a host.
	parts := strings.Split(strings.Trim(input, "/"), "/")
	if len(parts) >= 2 && !strings.Contains(parts[0], ".") {
		return parseGitHub([]string{input, parts[0], strings.TrimSuffix(parts[1], ".git"), strings.Join(parts[2:], "/")}, src), nil
	}
	if len(parts) >= 3 {
		return parseGitURL("https://"+input, src)
	}
	return nil, fmt.Errorf("%w: %q (expected owner/repo, owner/repo/skill-path, a git URL or a local path)", ErrInvalidSource, input)
}

func parseLocal(input string, src *Source) (*Source, error) {
	p := input
	if strings.HasPrefix(p, "file://") {
		u, err := url.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
		p = u.Path
	}
	abs, err := filepath.Abs(utils.ExpandPath(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	src.Kind = SourceLocal
	src.Path = abs
	src.Name = filepath.Base(abs)
	return src, nil
}

func parseGitHub(m []string, src *Source) *Source {
	owner, repo := m[1], m[2]
	src.Kind = SourceGitHub
	src.CloneURL = fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
	src.setSubpath(stripBranchPrefix(m[3], false), repo)
	return src
}

func parseGitURL(input string, src *Source) (*Source, error) {
	if m := gitHTTPSRe.FindStringSubmatch(input); m != nil {
		host, owner, repo := m[1], m[2], m[3]
		src.Kind = SourceGitHTTPS
		src.CloneURL = fmt.Sprintf("https://%s/%s/%s.git", host, owner, repo)
		src.setSubpath(stripBranchPrefix(m[4], strings.Contains(host, "bitbucket")), repo)
		return src, nil
	}
	// Anything else git understands (ssh://, git://, nested groups).
	u, err := url.Parse(input)
	if err != nil || u.Path == "" || u.Path == "/" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSource, input)
	}
	src.Kind = SourceGitHTTPS
	if u.Scheme == "ssh" {
		src.Kind = SourceGitSSH
	}
	src.CloneURL = input
	src.Name = strings.TrimSuffix(filepath.Base(u.Path), ".git")
	return src, nil
}

func (s *Source) setSubpath(sub, repo string) {
	sub = strings.Trim(sub, "/")
	if sub == "." {
		sub = ""
	}
	s.Subpath = sub
	s.Name = repo
	if sub != "" {
		s.Name = filepath.Base(filepath.FromSlash(sub))
	}
}

// stripBranchPrefix drops the tree/<branch>/ or blob/<branch>/ part of a
// web URL path, GitLab's -/tree/<branch>/ form and Bitbucket's src/<branch>/.
func stripBranchPrefix(sub string, bitbucket bool) string {
	sub = strings.TrimPrefix(sub, "-/")
	parts := strings.SplitN(sub, "/", 3)
	if len(parts) >= 2 && (parts[0] == "tree" || parts[0] == "blob" || (bitbucket && parts[0] == "src")) {
		if len(parts) == 3 {
			if parts[0] == "blob" {
				return filepath.ToSlash(filepath.Dir(parts[2]))
			}
			return parts[2]
		}
		return ""
	}
	return sub
}

// IsGit reports whether the source needs a clone.
func (s *Source) IsGit() bool {
	return s.Kind == SourceGitHub || s.Kind == SourceGitHTTPS || s.Kind == SourceGitSSH
}

// String is the form shown in "Installing from:".
func (s *Source) String() string {
	if s.Kind == SourceLocal {
		return s.Path
	}
	if s.Subpath != "" {
		return s.CloneURL + " (" + s.Subpath + ")"
	}
	return s.CloneURL
}
