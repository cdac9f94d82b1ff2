package project

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	t.Setenv("GIT_AUTHOR_NAME", "ship test")
	t.Setenv("GIT_AUTHOR_EMAIL", "ship@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "ship test")
	t.Setenv("GIT_COMMITTER_EMAIL", "ship@example.com")
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

func TestBase_Start_ScaffoldsRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	logger, _ := logtest.NewNullLogger()
	b := NewBaseHandler(dir, true, logger)

	require.NoError(t, b.Start(StartOptions{Target: "Widget"}))

	// Repo initialized, scaffolding rendered, everything committed.
	assert.DirExists(t, filepath.Join(dir, ".git"))

	conf, err := os.ReadFile(filepath.Join(dir, ".ship.conf"))
	require.NoError(t, err)
	assert.Contains(t, string(conf), "project_name = Widget")
	assert.Contains(t, string(conf), "class = base")

	assert.FileExists(t, filepath.Join(dir, ".gitignore"))

	status := runGit(t, dir, "status", "--porcelain")
	assert.Empty(t, status)

	subject := runGit(t, dir, "log", "-1", "--pretty=%s")
	assert.Equal(t, "Start Widget", subject)
}

func TestBase_Start_NoTargetStagesWithoutCommit(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	logger, _ := logtest.NewNullLogger()
	b := NewBaseHandler(dir, true, logger)

	require.NoError(t, b.Start(StartOptions{}))

	status := runGit(t, dir, "status", "--porcelain")
	assert.Contains(t, status, "A  .ship.conf")

	out, err := exec.Command("git", "-C", dir, "log", "-1").CombinedOutput()
	assert.Error(t, err, "expected no commits, got: %s", out)
}

func TestBase_Start_PreservesExistingConfig(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	write(t, dir, ".ship.conf", "project_name = keepme\n")

	logger, _ := logtest.NewNullLogger()
	b := NewBaseHandler(dir, true, logger)

	require.NoError(t, b.Start(StartOptions{Target: "Widget"}))

	conf, err := os.ReadFile(filepath.Join(dir, ".ship.conf"))
	require.NoError(t, err)
	assert.Equal(t, "project_name = keepme\n", string(conf))
}

func TestPerlHandler_Start_RendersManifestSkip(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	logger, _ := logtest.NewNullLogger()
	h := NewPerlHandler(dir, true, logger)

	require.NoError(t, h.Start(StartOptions{Target: "Foo-Bar"}))
	assert.FileExists(t, filepath.Join(dir, "MANIFEST.SKIP"))

	ignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(ignore), "Foo-Bar-*")
}

func TestBase_Ship_PushesBranchAndTag(t *testing.T) {
	requireGit(t)
	root := t.TempDir()

	origin := filepath.Join(root, "origin.git")
	require.NoError(t, os.MkdirAll(origin, 0755))
	runGit(t, origin, "init", "--bare")

	dir := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(dir, 0755))
	runGit(t, dir, "init")
	write(t, dir, ".ship.conf", "")
	write(t, dir, "Changes", "0.0.2  first real release\n")
	runGit(t, dir, "add", "-A")
	runGit(t, dir, "commit", "-m", "initial")
	runGit(t, dir, "remote", "add", "origin", origin)

	logger, _ := logtest.NewNullLogger()
	b := NewBaseHandler(dir, true, logger)

	require.NoError(t, b.Ship())

	tags := runGit(t, dir, "tag")
	assert.Equal(t, "0.0.2", tags)

	originTags := runGit(t, origin, "tag")
	assert.Equal(t, "0.0.2", originTags)
}

func TestBase_Ship_TagFormat(t *testing.T) {
	requireGit(t)
	root := t.TempDir()

	origin := filepath.Join(root, "origin.git")
	require.NoError(t, os.MkdirAll(origin, 0755))
	runGit(t, origin, "init", "--bare")

	dir := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(dir, 0755))
	runGit(t, dir, "init")
	write(t, dir, ".ship.conf", "new_version_format = v%s\n")
	write(t, dir, "Changes", "1.2.3\n")
	runGit(t, dir, "add", "-A")
	runGit(t, dir, "commit", "-m", "initial")
	runGit(t, dir, "remote", "add", "origin", origin)

	logger, _ := logtest.NewNullLogger()
	b := NewBaseHandler(dir, true, logger)

	require.NoError(t, b.Ship())
	assert.Equal(t, "v1.2.3", runGit(t, dir, "tag"))
}

func TestBase_Ship_NoVersionAborts(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	runGit(t, dir, "init")
	write(t, dir, ".ship.conf", "")
	runGit(t, dir, "add", "-A")
	runGit(t, dir, "commit", "-m", "initial")

	logger, _ := logtest.NewNullLogger()
	b := NewBaseHandler(dir, true, logger)
	assert.Error(t, b.Ship())
}

func TestBase_Ship_NoBranchAborts(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	runGit(t, dir, "init")
	// No commits: symbolic-ref resolves but push would fail; detach is
	// the cleaner probe once a commit exists.
	write(t, dir, ".ship.conf", "")
	write(t, dir, "Changes", "0.1.0\n")
	runGit(t, dir, "add", "-A")
	runGit(t, dir, "commit", "-m", "initial")
	runGit(t, dir, "checkout", "--detach")

	logger, _ := logtest.NewNullLogger()
	b := NewBaseHandler(dir, true, logger)
	err := b.Ship()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no current branch")
}
