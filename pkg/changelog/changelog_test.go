package changelog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFind_ConfiguredName(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, "HISTORY.md", "1.0.0\n")

	got, err := Find(dir, "HISTORY.md")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFind_ConfiguredNameMissing(t *testing.T) {
	_, err := Find(t.TempDir(), "HISTORY.md")
	assert.ErrorIs(t, err, ErrNoChangelog)
}

func TestFind_CandidateOrder(t *testing.T) {
	dir := t.TempDir()
	changes := writeFile(t, dir, "Changes", "0.01\n")
	writeFile(t, dir, "CHANGELOG.md", "9.9.9\n")

	got, err := Find(dir, "")
	require.NoError(t, err)
	assert.Equal(t, changes, got)
}

func TestFind_NoCandidates(t *testing.T) {
	_, err := Find(t.TempDir(), "")
	assert.ErrorIs(t, err, ErrNoChangelog)
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "markdown heading",
			content: "# Changelog\n\n## 1.2.3 - 2026-08-01\n\n- stuff\n",
			want:    "1.2.3",
		},
		{
			name:    "perl Changes style",
			content: "0.12  Mon Aug 31 2026\n    - fix things\n\n0.11  Sun Aug 30 2026\n",
			want:    "0.12",
		},
		{
			name:    "v prefix stripped",
			content: "v2.0.0\n",
			want:    "2.0.0",
		},
		{
			name:    "prerelease suffix kept",
			content: "## 1.0.0-rc.1\n",
			want:    "1.0.0-rc.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "Changes", tt.content)
			got, err := NextVersion(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextVersion_NoVersion(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Changes", "nothing to see here\n")
	_, err := NextVersion(path)
	assert.ErrorIs(t, err, ErrNoVersion)
}

func TestBump(t *testing.T) {
	tests := []struct {
		version string
		level   string
		want    string
	}{
		{"1.2.3", "patch", "1.2.4"},
		{"1.2.3", "minor", "1.3.0"},
		{"1.2.3", "major", "2.0.0"},
		{"1.2.3", "", "1.2.4"},
		{"v0.6.3", "patch", "v0.6.4"},
	}

	for _, tt := range tests {
		got, err := Bump(tt.version, tt.level)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestBump_BadInput(t *testing.T) {
	_, err := Bump("not-a-version", "patch")
	assert.Error(t, err)

	_, err = Bump("1.2.3", "gigantic")
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("1.2.3"))
	assert.False(t, Valid("release-one"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.2.3", Format("", "1.2.3"))
	assert.Equal(t, "v1.2.3", Format("v%s", "1.2.3"))
	assert.Equal(t, "release-1.2.3", Format("release-%s", "1.2.3"))
}
