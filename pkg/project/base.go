package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shiptool/ship/pkg/changelog"
	"github.com/shiptool/ship/pkg/config"
	"github.com/shiptool/ship/pkg/git"
	"github.com/shiptool/ship/pkg/runner"
	"github.com/shiptool/ship/pkg/templates"
)

// Base carries the state and behavior shared by every handler: lazy
// config loading, scaffolding, and the generic ship sequence. Ecosystem
// handlers embed it and override the capability holes (Build, Clean,
// TestCoverage).
type Base struct {
	name   string
	chain  []string
	Dir    string
	Silent bool
	Logger *logrus.Logger
	Run    *runner.Runner
	Git    *git.Client

	// extraScaffold names additional templates rendered during start,
	// after the config and ignore files.
	extraScaffold []string

	cfg       config.Config
	cfgLoaded bool
}

// NewBase constructs the shared handler state for the given project
// directory.
func NewBase(name string, chain []string, dir string, silent bool, logger *logrus.Logger) Base {
	run := runner.New(dir, silent, logger)
	return Base{
		name:   name,
		chain:  chain,
		Dir:    dir,
		Silent: silent,
		Logger: logger,
		Run:    run,
		Git:    git.New(run),
	}
}

// NewBaseHandler returns the generic handler. It is what start runs
// against when no project files exist yet to detect a kind from.
func NewBaseHandler(dir string, silent bool, logger *logrus.Logger) *Base {
	b := NewBase("base", nil, dir, silent, logger)
	return &b
}

func (b *Base) Name() string { return b.name }

// TemplateChain returns the template set precedence for this handler.
func (b *Base) TemplateChain() []string { return b.chain }

// CanHandle on the base never matches; detection relies on the
// ecosystem handlers.
func (b *Base) CanHandle(hint string) bool { return false }

// Config returns the project config, loading it on first access.
func (b *Base) Config() (config.Config, error) {
	if b.cfgLoaded {
		return b.cfg, nil
	}
	cfg, err := config.Load(b.configPath())
	if err != nil {
		return nil, err
	}
	b.cfg = cfg
	b.cfgLoaded = true
	return b.cfg, nil
}

// ConfigMap implements Handler.
func (b *Base) ConfigMap() (map[string]string, error) {
	cfg, err := b.Config()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResetConfig replaces the cached config with an empty one, so lookups
// on a brand-new project do not fail before the file is written.
func (b *Base) ResetConfig() {
	b.cfg = config.Config{}
	b.cfgLoaded = true
}

// DiscardConfig drops the cache so the next access reloads from disk.
func (b *Base) DiscardConfig() {
	b.cfg = nil
	b.cfgLoaded = false
}

func (b *Base) configPath() string {
	p := config.Path()
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.Dir, p)
}

// ProjectName returns the configured project_name, falling back to the
// directory name.
func (b *Base) ProjectName() string {
	if cfg, err := b.Config(); err == nil {
		if name := cfg.Get("project_name"); name != "" {
			return name
		}
	}
	return filepath.Base(absDir(b.Dir))
}

func absDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// NextVersion derives the version the next ship will tag: the topmost
// version in the changelog when one exists, otherwise a patch bump of
// the latest git tag.
func (b *Base) NextVersion() (string, error) {
	cfg, err := b.Config()
	if err != nil {
		return "", err
	}
	path, err := changelog.Find(b.Dir, cfg.Get("changelog_file"))
	if err == nil {
		return changelog.NextVersion(path)
	}
	if !errors.Is(err, changelog.ErrNoChangelog) {
		return "", err
	}
	if tag := b.Git.LatestTag(); tag != "" {
		return changelog.Bump(tag, "patch")
	}
	return "", fmt.Errorf("no changelog and no existing tag: cannot derive next version")
}

// Start scaffolds a new project: version control storage, the config
// file, and the ignore file. When a target name is given the staged
// files are also committed under that name.
func (b *Base) Start(opts StartOptions) error {
	b.ResetConfig()
	defer b.DiscardConfig()

	if !b.Git.IsRepo(b.Dir) {
		if err := b.Git.Init(); err != nil {
			return err
		}
	}

	name := opts.Target
	if name == "" {
		name = b.ProjectName()
	}
	license := opts.License
	if license == "" {
		license = "MIT"
	}

	r := templates.NewRenderer(b.Dir, b.chain, b.Logger)
	r.Silent = b.Silent
	r.Force = opts.Force
	data := templates.Data{
		ProjectName: name,
		Config:      b.cfg,
		Args: map[string]string{
			"class":   b.name,
			"license": license,
		},
	}

	for _, tmpl := range append([]string{config.DefaultFile, ".gitignore"}, b.extraScaffold...) {
		if err := r.RenderFile(tmpl, data); err != nil {
			return err
		}
	}

	if err := b.Git.AddAll(); err != nil {
		return err
	}
	if opts.Target != "" {
		if err := b.Git.Commit(fmt.Sprintf("Start %s", opts.Target)); err != nil {
			return err
		}
	}
	return nil
}

// Hook runs the shell command configured for a lifecycle event. Events
// without a configured command are a no-op.
func (b *Base) Hook(event string) error {
	cfg, err := b.Config()
	if err != nil {
		return err
	}
	command := cfg.Hook(event)
	if command == "" {
		return nil
	}
	b.Logger.Debugf("running %s hook", event)
	return b.Run.RunScript(command)
}

// Ship pushes the current branch, tags the next version, and pushes
// tags. There is no rollback: a failure after the branch push leaves
// the branch pushed, and the user re-runs after fixing the cause.
func (b *Base) Ship() error {
	branch, err := b.Git.CurrentBranch()
	if err != nil {
		return err
	}

	next, err := b.NextVersion()
	if err != nil {
		return err
	}
	if next == "" {
		return fmt.Errorf("no next version to ship")
	}

	cfg, err := b.Config()
	if err != nil {
		return err
	}
	tag := changelog.Format(cfg.Get("new_version_format"), next)

	if err := b.Git.Push(branch); err != nil {
		return err
	}
	if err := b.Git.Tag(tag); err != nil {
		return err
	}
	if err := b.Git.PushTags(); err != nil {
		return err
	}

	if !b.Silent {
		b.Logger.Infof("shipped %s %s (tag %s, branch %s)", b.ProjectName(), next, tag, branch)
	}
	return nil
}

// Build is a capability hole: the base has no generic notion of a build.
func (b *Base) Build() error {
	return fmt.Errorf("%w: build", ErrUnsupported)
}

// Clean is a capability hole like Build.
func (b *Base) Clean() error {
	return fmt.Errorf("%w: clean", ErrUnsupported)
}

// TestCoverage is a capability hole like Build.
func (b *Base) TestCoverage() error {
	return fmt.Errorf("%w: test_coverage", ErrUnsupported)
}

// Actions lists no extra verbs by default.
func (b *Base) Actions() map[string]Action {
	return map[string]Action{}
}

// BuildTestOptions splits the build_test_options config value into
// arguments passed to the ecosystem's test command.
func (b *Base) BuildTestOptions() []string {
	cfg, err := b.Config()
	if err != nil {
		return nil
	}
	return strings.Fields(cfg.Get("build_test_options"))
}
