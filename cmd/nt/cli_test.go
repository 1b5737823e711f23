package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/nt/internal/tree"
)

// testEnv points every command at a config and data file inside t.TempDir().
type testEnv struct {
	dir     string
	backend string
}

func newTestEnv(t *testing.T, backend string) testEnv {
	t.Helper()
	return testEnv{dir: t.TempDir(), backend: backend}
}

func (e testEnv) dataPath() string {
	if e.backend == "json" {
		return filepath.Join(e.dir, "notes.json")
	}
	return filepath.Join(e.dir, "notes.db")
}

func runCLI(t *testing.T, env testEnv, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(env.dir, "config.yaml"),
		"--backend", env.backend,
		"--db", env.dataPath(),
	}, args...))

	err := cmd.Execute()
	return outBuf.String(), err
}

// mustRun runs a command that is expected to succeed and returns its trimmed output.
func mustRun(t *testing.T, env testEnv, args ...string) string {
	t.Helper()
	out, err := runCLI(t, env, args...)
	assert.NilError(t, err, "nt %s", strings.Join(args, " "))
	return strings.TrimSpace(out)
}

// treeLines returns `nt tree --ids=false` output split into lines.
func treeLines(t *testing.T, env testEnv) []string {
	t.Helper()
	out := mustRun(t, env, "tree", "--ids=false")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestCLI_AddAndTree(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			env := newTestEnv(t, backend)

			projects := mustRun(t, env, "add", "Projects")
			mustRun(t, env, "add", "Plan", "and", "ideas", "--parent", projects)

			assert.DeepEqual(t, treeLines(t, env), []string{
				"📄 Projects",
				"  📄 Plan and ideas",
			})

			out := mustRun(t, env, "tree")
			assert.Check(t, is.Contains(out, "📄 Projects  "+projects))
		})
	}
}

func TestCLI_AddPlaceholderTitle(t *testing.T) {
	env := newTestEnv(t, "json")

	mustRun(t, env, "add")

	lines := treeLines(t, env)
	assert.Equal(t, len(lines), 1)
	assert.Check(t, strings.HasPrefix(lines[0], "📄 note-"))
}

func TestCLI_MoveReordersRoots(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			env := newTestEnv(t, backend)

			mustRun(t, env, "add", "A")
			mustRun(t, env, "add", "B")
			c := mustRun(t, env, "add", "C")

			out := mustRun(t, env, "mv", c, "--index", "0")
			assert.Check(t, is.Contains(out, "Moved 1 item(s)"))

			assert.DeepEqual(t, treeLines(t, env), []string{"📄 C", "📄 A", "📄 B"})
		})
	}
}

func TestCLI_MoveUnderParent(t *testing.T) {
	env := newTestEnv(t, "json")

	p := mustRun(t, env, "add", "Parent")
	x := mustRun(t, env, "add", "X")
	y := mustRun(t, env, "add", "Y")

	mustRun(t, env, "mv", x, y, "--to", p, "--index", "5")

	assert.DeepEqual(t, treeLines(t, env), []string{"📄 Parent", "  📄 X", "  📄 Y"})
}

func TestCLI_MoveCycleFails(t *testing.T) {
	env := newTestEnv(t, "json")

	p := mustRun(t, env, "add", "Parent")
	c := mustRun(t, env, "add", "Child", "--parent", p)

	_, err := runCLI(t, env, "mv", p, "--to", c)
	assert.Check(t, errors.Is(err, tree.ErrCycle))
	assert.DeepEqual(t, treeLines(t, env), []string{"📄 Parent", "  📄 Child"})
}

func TestCLI_Rename(t *testing.T) {
	env := newTestEnv(t, "json")

	id := mustRun(t, env, "add", "Old")
	out := mustRun(t, env, "rename", id, "New", "title")

	assert.Check(t, is.Contains(out, `"New title"`))
	assert.DeepEqual(t, treeLines(t, env), []string{"📄 New title"})

	_, err := runCLI(t, env, "rename", "missing", "x")
	assert.Check(t, errors.Is(err, tree.ErrNotFound))
}

func TestCLI_RemoveIsBestEffort(t *testing.T) {
	env := newTestEnv(t, "sqlite")

	a := mustRun(t, env, "add", "A")
	mustRun(t, env, "add", "B")

	out, err := runCLI(t, env, "rm", "missing", a)
	assert.Check(t, errors.Is(err, tree.ErrNotFound))
	assert.Check(t, is.Contains(out, "Deleted "+a))
	assert.DeepEqual(t, treeLines(t, env), []string{"📄 B"})
}

func TestCLI_Normalize(t *testing.T) {
	env := newTestEnv(t, "json")

	mustRun(t, env, "add", "A")
	mustRun(t, env, "add", "B")

	// New items are created with order 0
	out := mustRun(t, env, "normalize")
	assert.Equal(t, out, "Renumbered 2 item(s)")

	out = mustRun(t, env, "normalize")
	assert.Equal(t, out, "Renumbered 0 item(s)")
}

func TestCLI_FindList(t *testing.T) {
	env := newTestEnv(t, "json")

	home := mustRun(t, env, "add", "Home")
	garden := mustRun(t, env, "add", "Gardening", "--parent", home)
	mustRun(t, env, "add", "Groceries")

	out := mustRun(t, env, "find", "gardn", "--list")
	assert.Equal(t, out, "Home / Gardening  "+garden)

	out = mustRun(t, env, "find", "zzz")
	assert.Equal(t, out, "No items found for 'zzz'")
}

func TestCLI_ExportImportRoundTrip(t *testing.T) {
	src := newTestEnv(t, "json")
	p := mustRun(t, src, "add", "Projects")
	mustRun(t, src, "add", "Plan & ideas", "--parent", p)
	mustRun(t, src, "add", "Inbox")
	mustRun(t, src, "normalize")

	exportPath := filepath.Join(src.dir, "export.html")
	out := mustRun(t, src, "export", exportPath)
	assert.Check(t, is.Contains(out, "Exported 3 item(s)"))

	dst := newTestEnv(t, "sqlite")
	mustRun(t, dst, "add", "Existing")
	out = mustRun(t, dst, "import", exportPath)
	assert.Equal(t, out, "Imported 3 item(s)")

	assert.DeepEqual(t, treeLines(t, dst), []string{
		"📄 Existing",
		"📄 Projects",
		"  📄 Plan & ideas",
		"📄 Inbox",
	})
}

func TestCLI_ConfigFileIsCreated(t *testing.T) {
	env := newTestEnv(t, "json")

	mustRun(t, env, "tree")

	_, err := os.Stat(filepath.Join(env.dir, "config.yaml"))
	assert.NilError(t, err)
}

func TestCLI_InvalidBackend(t *testing.T) {
	env := newTestEnv(t, "postgres")

	_, err := runCLI(t, env, "tree")
	assert.ErrorContains(t, err, "invalid backend")
}
