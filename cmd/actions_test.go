package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiptool/ship/pkg/project"
)

// fakeHandler records which lifecycle calls and hooks ran, in order.
type fakeHandler struct {
	calls   []string
	failOn  string
	extras  map[string]project.Action
	version string
}

func (f *fakeHandler) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeHandler) Name() string { return "fake" }
func (f *fakeHandler) CanHandle(hint string) bool { return true }
func (f *fakeHandler) ProjectName() string { return "fake" }
func (f *fakeHandler) Build() error { return f.record("build") }
func (f *fakeHandler) Ship() error { return f.record("ship") }
func (f *fakeHandler) Clean() error { return f.record("clean") }
func (f *fakeHandler) TestCoverage() error { return f.record("test_coverage") }
func (f *fakeHandler) Hook(event string) error { return f.record("hook:" + event) }
func (f *fakeHandler) NextVersion() (string, error) { return f.version, nil }

func (f *fakeHandler) Start(opts project.StartOptions) error {
	return f.record("start")
}

func (f *fakeHandler) Actions() map[string]project.Action {
	return f.extras
}

func (f *fakeHandler) ConfigMap() (map[string]string, error) {
	return map[string]string{}, nil
}

func TestInvoke_WrapsActionInHooks(t *testing.T) {
	f := &fakeHandler{}
	require.NoError(t, invoke(f, "build", nil))
	assert.Equal(t, []string{"hook:before_build", "build", "hook:after_build"}, f.calls)
}

func TestInvoke_FailingActionSkipsAfterHook(t *testing.T) {
	f := &fakeHandler{failOn: "ship"}
	require.Error(t, invoke(f, "ship", nil))
	assert.Equal(t, []string{"hook:before_ship", "ship"}, f.calls)
}

func TestInvoke_FailingBeforeHookSkipsAction(t *testing.T) {
	f := &fakeHandler{failOn: "hook:before_build"}
	require.Error(t, invoke(f, "build", nil))
	assert.Equal(t, []string{"hook:before_build"}, f.calls)
}

func TestInvoke_ExtraAction(t *testing.T) {
	ran := false
	f := &fakeHandler{extras: map[string]project.Action{
		"manifest": func(args []string) error {
			ran = true
			return nil
		},
	}}
	require.NoError(t, invoke(f, "manifest", nil))
	assert.True(t, ran)
	assert.Equal(t, []string{"hook:before_manifest", "hook:after_manifest"}, f.calls)
}

func TestInvoke_UnknownAction(t *testing.T) {
	f := &fakeHandler{}
	err := invoke(f, "deploy_to_mars", nil)
	assert.ErrorIs(t, err, errUnknownAction)
	assert.Empty(t, f.calls)
}

func TestDispatch_RejectsInvalidIdentifier(t *testing.T) {
	err := dispatch("not a method!", nil)
	assert.ErrorIs(t, err, errUnknownAction)
}

func TestIdentifierNormalization(t *testing.T) {
	// Hyphenated verbs normalize to underscores before validation.
	assert.True(t, identifierPattern.MatchString("test_coverage"))
	assert.False(t, identifierPattern.MatchString("test coverage"))
	assert.False(t, identifierPattern.MatchString("../evil"))
}

func TestFakeHandlerSatisfiesInterface(t *testing.T) {
	var _ project.Handler = &fakeHandler{}
}
