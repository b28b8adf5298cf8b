package session_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/rebatch/pkg/entries"
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/manifest"
	"github.com/arthur-debert/rebatch/pkg/session"
	"github.com/arthur-debert/rebatch/pkg/testutil"
	"github.com/arthur-debert/rebatch/pkg/transfer"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, env *testutil.TestEnvironment, opts transfer.Options) *session.Session {
	t.Helper()
	s := session.New(env.FS, session.Options{Listing: entries.DefaultOptions(), Transfer: opts})
	_, err := s.Open(env.SourceDir)
	require.NoError(t, err)
	return s
}

func TestSession_RenameReconcilesSelection(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.jpg": "A", "b.jpg": "B", "c.jpg": "C", "x2.jpg": "X"})

	s := newSession(t, env, transfer.Options{})
	reg := s.Registry()
	require.NoError(t, reg.SelectByName("a.jpg", "b.jpg"))
	require.NoError(t, s.Plan("x", ""))

	result, err := s.Rename(types.PolicySkip)
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, []string{"b.jpg", "c.jpg", "x1.jpg", "x2.jpg"}, env.ListNames(env.SourceDir))
	assert.Equal(t, []string{"x1.jpg", "b.jpg"}, types.FileNames(reg.Selected()),
		"renamed entries are reselected under the new name, skipped ones under the old")
	for _, e := range reg.Entries() {
		assert.Empty(t, e.TargetName, "reload drops planned targets")
	}
}

func TestSession_MoveClearsSelection(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "A", "b.txt": "B"})

	s := newSession(t, env, transfer.Options{})
	require.NoError(t, s.Registry().SelectByName("a.txt"))

	result, err := s.Move(env.DestDir, types.PolicyNone)
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, result.Status)

	assert.Empty(t, s.Registry().Selected())
	assert.Equal(t, []string{"b.txt"}, types.FileNames(s.Registry().Entries()), "registry is reloaded from the source")
	assert.Equal(t, "A", env.ReadFile(filepath.Join(env.DestDir, "a.txt")))
}

func TestSession_AbortKeepsState(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "new")
	env.WriteFile(env.DestDir, "a.txt", "old")

	s := newSession(t, env, transfer.Options{})
	require.NoError(t, s.Registry().SelectByName("a.txt"))

	found, err := s.Conflicts(types.OperationCopy, env.DestDir)
	require.NoError(t, err)
	require.Len(t, found, 1)

	result, err := s.Copy(env.DestDir, types.PolicyNone)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConflictsUnresolved))
	assert.Equal(t, types.StatusAborted, result.Status)
	assert.Equal(t, []string{"a.txt"}, types.FileNames(s.Registry().Selected()), "selection survives so a policy can be chosen")

	result, err = s.Copy(env.DestDir, types.PolicyCreateCopy)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Counts.CopiedAside)
	assert.Empty(t, s.Registry().Selected())
}

func TestSession_DryRunKeepsState(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "A")

	s := newSession(t, env, transfer.Options{DryRun: true})
	require.NoError(t, s.Registry().SelectByName("a.txt"))
	require.NoError(t, s.Plan("z", "-"))

	result, err := s.Rename(types.PolicyNone)
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, filepath.Join(env.SourceDir, "z-1.txt"), result.Outcomes[0].Destination)

	selected := s.Registry().Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "z-1", selected[0].TargetName)
	assert.True(t, env.Exists(filepath.Join(env.SourceDir, "a.txt")))
}

func TestSession_RenameInPlaceConflicts(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "", "n1.txt": ""})

	s := newSession(t, env, transfer.Options{})
	require.NoError(t, s.Registry().SelectByName("a.txt"))
	require.NoError(t, s.Plan("n", ""))

	found, err := s.Conflicts(types.OperationRename, "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "n1.txt", found[0].DisplayName)
}

func TestSession_ConflictsStructuralChecks(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "")

	s := newSession(t, env, transfer.Options{})

	_, err := s.Conflicts(types.OperationCopy, env.DestDir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSelection), "got %v", err)

	require.NoError(t, s.Registry().SelectByName("a.txt"))

	found, err := s.Conflicts(types.OperationCopy, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDestination), "got %v", err)
	assert.Nil(t, found)

	_, err = s.Conflicts(types.OperationMove, "/virtual/missing")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidDestination), "got %v", err)

	_, err = s.Conflicts(types.OperationRename, "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrIncompleteRenamePlan), "got %v", err)
}

func TestSession_ManifestTargetOutsideDestination(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "payload", "b.txt": "B"})
	env.WriteFile("/virtual", "victim1.txt", "keep me")

	s := newSession(t, env, transfer.Options{})
	require.NoError(t, manifest.Apply(s.Registry(), &manifest.Manifest{
		Directory: env.SourceDir,
		Entries: []manifest.Entry{
			{Name: "a.txt", Extension: ".txt", Target: "../victim1"},
			{Name: "b.txt", Extension: ".txt", Target: "b1"},
		},
	}))

	result, err := s.Copy(env.DestDir, types.PolicyOverwrite)
	require.NoError(t, err)

	assert.Equal(t, types.StatusPartialFailure, result.Status)
	assert.True(t, errors.IsErrorCode(result.Outcomes[0].Error, errors.ErrPathInvalid))
	assert.Equal(t, types.ActionTransferred, result.Outcomes[1].Action)
	assert.Equal(t, "keep me", env.ReadFile("/virtual/victim1.txt"))
	assert.Equal(t, []string{"b1.txt"}, env.ListNames(env.DestDir))
}
