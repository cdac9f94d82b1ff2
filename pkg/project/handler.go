// Package project implements the per-ecosystem handlers behind ship's
// lifecycle actions and the detection logic that picks one for the
// current directory.
package project

import "errors"

// ErrDetection is returned when no handler recognizes the project.
var ErrDetection = errors.New("could not figure out project kind")

// ErrLoad is returned when the config names a handler that is not
// registered.
var ErrLoad = errors.New("unknown handler class")

// ErrUnsupported marks lifecycle actions a handler does not implement.
// The base handler has deliberately no generic notion of building or
// measuring coverage; ecosystem handlers fill those holes.
var ErrUnsupported = errors.New("action not supported for this project kind")

// Action is an extra verb a handler exposes beyond the built-in
// lifecycle actions.
type Action func(args []string) error

// StartOptions parametrizes project scaffolding.
type StartOptions struct {
	// Target is the project name. When non-empty the staged scaffolding
	// is also committed.
	Target string
	// License is written into the generated config; defaults to MIT.
	License string
	// Force overwrites scaffolding files that already exist.
	Force bool
}

// Handler implements the lifecycle actions for one project ecosystem.
type Handler interface {
	// Name is the handler's registry name, used as the config `class`
	// value and as its template set name.
	Name() string

	// CanHandle reports whether this handler applies to the project
	// directory. hint is an optional file name given on the command line.
	CanHandle(hint string) bool

	Start(opts StartOptions) error
	Build() error
	Ship() error
	Clean() error
	TestCoverage() error

	// Hook runs the configured shell command for a lifecycle event, if
	// any. A missing hook is not an error.
	Hook(event string) error

	// Actions lists extra verbs dispatchable by name.
	Actions() map[string]Action

	// ConfigMap returns the loaded project config (empty during start).
	ConfigMap() (map[string]string, error)

	// ProjectName returns the human name used in templates and commits.
	ProjectName() string

	// NextVersion returns the version a ship action will tag.
	NextVersion() (string, error)
}
