// Package config loads the flat key = value configuration file that ship
// reads from the project root (.ship.conf by default).
//
// The format deliberately matches what existing projects already carry:
// one key = value pair per line, full-line and trailing # comments, and
// \# as an escape for a literal hash inside a value. Unknown keys pass
// through untouched so ecosystem handlers can define their own.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultFile is the config file name looked up in the project root.
const DefaultFile = ".ship.conf"

// EnvFile overrides the config file path when set.
const EnvFile = "SHIP_CONFIG"

// Hook keys recognized around lifecycle actions.
const (
	HookBeforeBuild = "before_build"
	HookAfterBuild  = "after_build"
	HookBeforeShip  = "before_ship"
	HookAfterShip   = "after_ship"
)

// ErrRead wraps failures reading the config file, including a missing
// file.
var ErrRead = errors.New("cannot read config")

// Config is a flat string mapping read from the config file. Within one
// load keys are unique; the last occurrence wins.
type Config map[string]string

// Path returns the config file path, honoring the SHIP_CONFIG override.
func Path() string {
	if p := os.Getenv(EnvFile); p != "" {
		return p
	}
	return DefaultFile
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return Parse(string(data)), nil
}

// LoadOrEmpty behaves like Load but substitutes an empty config when the
// file does not exist. Used during start, before the file is written.
func LoadOrEmpty(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Parse parses config file content line by line. Lines without an
// unescaped = are ignored.
func Parse(content string) Config {
	cfg := Config{}
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := parseLine(line)
		if !ok {
			continue
		}
		cfg[key] = value
	}
	return cfg
}

// parseLine extracts one key/value pair. Comment stripping happens before
// the key/value split so a fully commented line is skipped outright.
func parseLine(line string) (key, value string, ok bool) {
	line = stripComment(line)
	line = strings.TrimSpace(line)
	if line == "" {
		return "", "", false
	}

	eq := indexUnescaped(line, '=')
	if eq < 0 {
		return "", "", false
	}

	key = strings.TrimSpace(line[:eq])
	value = strings.TrimSpace(line[eq+1:])
	if key == "" {
		return "", "", false
	}
	return key, unescape(value), true
}

// stripComment removes a trailing comment. A # starts a comment when it is
// the first character of the line or is preceded by whitespace, and is not
// escaped with a backslash.
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return ""
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		if i > 0 && line[i-1] != ' ' && line[i-1] != '\t' {
			continue
		}
		return line[:i]
	}
	return line
}

// indexUnescaped returns the index of the first c not preceded by a
// backslash, or -1.
func indexUnescaped(s string, c byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == c && (i == 0 || s[i-1] != '\\') {
			return i
		}
	}
	return -1
}

// unescape turns \# back into a literal #.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\#`, "#")
}

// Get returns the value for key, or the empty string.
func (c Config) Get(key string) string {
	return c[key]
}

// GetDefault returns the value for key, or def when unset.
func (c Config) GetDefault(key, def string) string {
	if v, ok := c[key]; ok {
		return v
	}
	return def
}

// Hook returns the shell command configured for the given lifecycle event,
// or the empty string when none is set.
func (c Config) Hook(event string) string {
	return c[event]
}
