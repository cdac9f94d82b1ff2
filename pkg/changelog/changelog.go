// Package changelog derives the next release version from a project's
// existing changelog, falling back to bumping the latest git tag.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNoChangelog is returned when no changelog file can be located.
var ErrNoChangelog = errors.New("no changelog file found")

// ErrNoVersion is returned when a changelog contains no version token.
var ErrNoVersion = errors.New("no version found in changelog")

// Candidate file names probed in order when the config does not name one.
var candidates = []string{"Changes", "CHANGELOG.md", "CHANGELOG", "ChangeLog"}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:[-+][0-9A-Za-z.-]+)?)`)

// Find locates the changelog file under dir. configured, when non-empty,
// takes precedence over the conventional candidates.
func Find(dir, configured string) (string, error) {
	if configured != "" {
		path := filepath.Join(dir, configured)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNoChangelog, configured)
		}
		return path, nil
	}
	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNoChangelog
}

// NextVersion reads the changelog at path and returns the first
// version-looking token, which by convention heads the topmost (newest)
// entry and names the release being prepared.
func NextVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading changelog: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := versionPattern.FindStringSubmatch(line)
		if m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoVersion, path)
}

// Bump increments version according to level ("major", "minor" or
// "patch"). The input may carry a leading v, which is preserved.
func Bump(version, level string) (string, error) {
	prefix := ""
	if strings.HasPrefix(version, "v") {
		prefix = "v"
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("parsing version %q: %w", version, err)
	}
	var next semver.Version
	switch level {
	case "major":
		next = v.IncMajor()
	case "minor":
		next = v.IncMinor()
	case "patch", "":
		next = v.IncPatch()
	default:
		return "", fmt.Errorf("unknown bump level %q", level)
	}
	return prefix + next.String(), nil
}

// Valid reports whether s parses as a semantic version.
func Valid(s string) bool {
	_, err := semver.NewVersion(s)
	return err == nil
}

// Format applies the configured new_version_format to a bare version
// string. The format is a pattern with a single %s placeholder, e.g.
// "v%s". An empty format returns the version unchanged.
func Format(format, version string) string {
	if format == "" {
		return version
	}
	return fmt.Sprintf(format, version)
}
