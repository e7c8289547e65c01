package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"

	"openskills/internal/config"
	"openskills/internal/ui"
)

type cliEnv struct {
	home    string
	project string
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

// setupCLI isolates HOME, the XDG directories and the working directory,
// and captures console output. Prompts see a non-interactive stdin.
func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	home := t.TempDir()
	project := t.TempDir()

	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	t.Chdir(project)

	env := &cliEnv{home: home, project: project, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	prevOut, prevTTY, prevConfirm := ui.Out, stdinIsTTY, confirm
	ui.Out = env.out
	stdinIsTTY = func() bool { return false }
	t.Cleanup(func() {
		ui.Out, stdinIsTTY, confirm = prevOut, prevTTY, prevConfirm
		cfg = config.Default()
		cfgPath = ""
	})
	return env
}

// run executes the CLI with args and returns its error.
func (e *cliEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	e.out.Reset()
	e.errOut.Reset()
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(e.out)
	root.SetErr(e.errOut)
	return root.ExecuteContext(context.Background())
}

func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	if err := e.run(t, args...); err != nil {
		t.Fatalf("openskills %v: %v\noutput:\n%s", args, err, e.out.String())
	}
	return e.out.String()
}

// writeSkill creates dir/name/SKILL.md with frontmatter.
func writeSkill(t *testing.T, dir, name, description string) string {
	t.Helper()
	skillDir := filepath.Join(dir, name)
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: " + description + "\n---\n\n# " + name + "\n"
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return skillDir
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
