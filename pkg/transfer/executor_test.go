package transfer_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/rebatch/pkg/entries"
	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/testutil"
	"github.com/arthur-debert/rebatch/pkg/transfer"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pick loads the source directory and returns the named entries in the given order
func pick(t *testing.T, env *testutil.TestEnvironment, names ...string) []types.FileEntry {
	t.Helper()
	reg := entries.New(env.FS, entries.DefaultOptions())
	_, err := reg.Load(env.SourceDir)
	require.NoError(t, err)
	require.NoError(t, reg.SelectByName(names...))
	return reg.Selected()
}

func TestExecute_MoveRoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.bin", "\x00\x01payload")

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.bin"),
		Destination: env.DestDir,
		Operation:   types.OperationMove,
	})
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.False(t, env.Exists(filepath.Join(env.SourceDir, "a.bin")))
	assert.Equal(t, "\x00\x01payload", env.ReadFile(filepath.Join(env.DestDir, "a.bin")))
	assert.Equal(t, 1, result.Counts.Transferred)
	assert.Equal(t, env.SourceDir, result.Source)
}

func TestExecute_CopyKeepsSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "A", "b.txt": "B"})

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt", "b.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
	})
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, []string{"a.txt", "b.txt"}, env.ListNames(env.SourceDir))
	assert.Equal(t, []string{"a.txt", "b.txt"}, env.ListNames(env.DestDir))
	assert.Equal(t, "B", env.ReadFile(filepath.Join(env.DestDir, "b.txt")))
}

func TestExecute_CopyUsesTargetNames(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "img.png", "px")

	batch := pick(t, env, "img.png")
	batch[0].TargetName = "trip-1"

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	_, err := x.Execute(transfer.Request{Entries: batch, Destination: env.DestDir, Operation: types.OperationCopy})
	require.NoError(t, err)

	assert.Equal(t, "px", env.ReadFile(filepath.Join(env.DestDir, "trip-1.png")))
}

func TestExecute_CreateCopy(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "report.txt", "new")
	env.WriteFile(env.DestDir, "report.txt", "old")

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "report.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
		Policy:      types.PolicyCreateCopy,
	})
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, "old", env.ReadFile(filepath.Join(env.DestDir, "report.txt")))
	assert.Equal(t, "new", env.ReadFile(filepath.Join(env.DestDir, "report (Copy).txt")))
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, types.ActionCopiedAside, result.Outcomes[0].Action)
	assert.Len(t, result.Conflicts, 1)
}

func TestExecute_CreateCopyMoveGoesToAlternate(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "report.txt", "new")
	env.WriteFile(env.DestDir, "report.txt", "old")

	x := transfer.NewExecutor(env.FS, transfer.Options{CopySuffix: "-dup"})
	_, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "report.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationMove,
		Policy:      types.PolicyCreateCopy,
	})
	require.NoError(t, err)

	assert.False(t, env.Exists(filepath.Join(env.SourceDir, "report.txt")))
	assert.Equal(t, "new", env.ReadFile(filepath.Join(env.DestDir, "report-dup.txt")))
	assert.Equal(t, "old", env.ReadFile(filepath.Join(env.DestDir, "report.txt")))
}

func TestExecute_CreateCopyAlternateTaken(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "report.txt", "new")
	env.WriteFiles(env.DestDir, map[string]string{"report.txt": "old", "report (Copy).txt": "older copy"})

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "report.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
		Policy:      types.PolicyCreateCopy,
	})
	require.NoError(t, err)

	assert.Equal(t, types.StatusPartialFailure, result.Status)
	require.Len(t, result.Failures(), 1)
	assert.True(t, errors.IsErrorCode(result.Failures()[0].Error, errors.ErrDestinationExists))
	assert.Equal(t, "older copy", env.ReadFile(filepath.Join(env.DestDir, "report (Copy).txt")))
}

func TestExecute_Skip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "new a", "b.txt": "new b"})
	env.WriteFile(env.DestDir, "a.txt", "old a")

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt", "b.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationMove,
		Policy:      types.PolicySkip,
	})
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, types.ActionSkipped, result.Outcomes[0].Action)
	assert.NoError(t, result.Outcomes[0].Error)
	assert.Equal(t, types.ActionTransferred, result.Outcomes[1].Action)

	assert.Equal(t, "old a", env.ReadFile(filepath.Join(env.DestDir, "a.txt")))
	assert.Equal(t, "new a", env.ReadFile(filepath.Join(env.SourceDir, "a.txt")))
	assert.Equal(t, "new b", env.ReadFile(filepath.Join(env.DestDir, "b.txt")))
}

func TestExecute_Overwrite(t *testing.T) {
	for _, op := range []types.Operation{types.OperationCopy, types.OperationMove} {
		t.Run(string(op), func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			env.WriteFile(env.SourceDir, "a.txt", "fresh")
			env.WriteFile(env.DestDir, "a.txt", "stale")

			x := transfer.NewExecutor(env.FS, transfer.Options{})
			result, err := x.Execute(transfer.Request{
				Entries:     pick(t, env, "a.txt"),
				Destination: env.DestDir,
				Operation:   op,
				Policy:      types.PolicyOverwrite,
			})
			require.NoError(t, err)

			assert.Equal(t, types.StatusSuccess, result.Status)
			assert.True(t, result.Outcomes[0].Replaced)
			assert.Equal(t, "fresh", env.ReadFile(filepath.Join(env.DestDir, "a.txt")))
		})
	}
}

func TestExecute_OverwriteNeverDeletesOwnSource(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "keep me")

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt"),
		Destination: env.SourceDir,
		Operation:   types.OperationMove,
		Policy:      types.PolicyOverwrite,
	})
	require.NoError(t, err)

	assert.Equal(t, types.StatusPartialFailure, result.Status)
	assert.True(t, errors.IsErrorCode(result.Outcomes[0].Error, errors.ErrSameFile))
	assert.Equal(t, "keep me", env.ReadFile(filepath.Join(env.SourceDir, "a.txt")))
}

func TestExecute_ConflictsUnresolved(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "new", "b.txt": "b"})
	env.WriteFile(env.DestDir, "a.txt", "old")

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt", "b.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
	})
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrConflictsUnresolved))
	assert.True(t, errors.IsStructural(err))
	assert.Equal(t, types.StatusAborted, result.Status)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "a.txt", result.Conflicts[0].DisplayName)
	assert.Empty(t, result.Outcomes)
	assert.Equal(t, []string{"a.txt"}, env.ListNames(env.DestDir), "no I/O happened")
}

func TestExecute_ResolverChoosesPolicy(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "new")
	env.WriteFile(env.DestDir, "a.txt", "old")

	resolver := new(testutil.MockResolver)
	resolver.On("Resolve", mock.MatchedBy(func(c []types.FileConflict) bool {
		return len(c) == 1 && c[0].DisplayName == "a.txt"
	})).Return(types.PolicySkip, nil).Once()

	x := transfer.NewExecutor(env.FS, transfer.Options{Resolver: resolver})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
	})
	require.NoError(t, err)

	resolver.AssertExpectations(t)
	assert.Equal(t, types.PolicySkip, result.Policy)
	assert.Equal(t, 1, result.Counts.Skipped)
}

func TestExecute_ResolverNotAskedWithoutConflicts(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "new")

	resolver := new(testutil.MockResolver)
	x := transfer.NewExecutor(env.FS, transfer.Options{Resolver: resolver})
	_, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
	})
	require.NoError(t, err)
	resolver.AssertNotCalled(t, "Resolve", mock.Anything)
}

func TestExecute_ResolverAbortsOrDeclines(t *testing.T) {
	tests := []struct {
		name   string
		policy types.Policy
		code   errors.ErrorCode
	}{
		{"abort", types.PolicyAbort, errors.ErrAborted},
		{"none", types.PolicyNone, errors.ErrConflictsUnresolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			env.WriteFile(env.SourceDir, "a.txt", "new")
			env.WriteFile(env.DestDir, "a.txt", "old")

			x := transfer.NewExecutor(env.FS, transfer.Options{Resolver: transfer.StaticResolver(tt.policy)})
			result, err := x.Execute(transfer.Request{
				Entries:     pick(t, env, "a.txt"),
				Destination: env.DestDir,
				Operation:   types.OperationMove,
			})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code))
			assert.Equal(t, types.StatusAborted, result.Status)
			assert.True(t, env.Exists(filepath.Join(env.SourceDir, "a.txt")))
		})
	}
}

func TestExecute_StructuralErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "")
	notADir := env.WriteFile(env.DestDir, "file", "")
	batch := pick(t, env, "a.txt")

	tests := []struct {
		name string
		req  transfer.Request
		code errors.ErrorCode
	}{
		{"empty selection", transfer.Request{Operation: types.OperationCopy, Destination: env.DestDir}, errors.ErrNoSelection},
		{"no destination", transfer.Request{Entries: batch, Operation: types.OperationMove}, errors.ErrInvalidDestination},
		{"missing destination", transfer.Request{Entries: batch, Operation: types.OperationCopy, Destination: "/nowhere"}, errors.ErrInvalidDestination},
		{"destination is a file", transfer.Request{Entries: batch, Operation: types.OperationCopy, Destination: notADir}, errors.ErrInvalidDestination},
		{"rename without targets", transfer.Request{Entries: batch, Operation: types.OperationRename}, errors.ErrIncompleteRenamePlan},
		{"unknown operation", transfer.Request{Entries: batch, Operation: "link", Destination: env.DestDir}, errors.ErrInvalidInput},
		{"unknown policy", transfer.Request{Entries: batch, Operation: types.OperationCopy, Destination: env.DestDir, Policy: "merge"}, errors.ErrInvalidInput},
	}

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := x.Execute(tt.req)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			require.NotNil(t, result)
			assert.Equal(t, types.StatusAborted, result.Status)
			assert.Empty(t, result.Outcomes)
		})
	}
}

func TestExecute_RenameInPlace(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.jpg": "A", "b.png": "B", "trip-3.txt": "C"})

	batch := pick(t, env, "a.jpg", "b.png", "trip-3.txt")
	batch[0].TargetName = "trip-1"
	batch[1].TargetName = "trip-2"
	batch[2].TargetName = "trip-3"

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{Entries: batch, Operation: types.OperationRename})
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, result.Status)
	assert.Equal(t, env.SourceDir, result.Destination)
	assert.Equal(t, []string{"trip-1.jpg", "trip-2.png", "trip-3.txt"}, env.ListNames(env.SourceDir))
	assert.Equal(t, "A", env.ReadFile(filepath.Join(env.SourceDir, "trip-1.jpg")))
	assert.Equal(t, types.ActionUnchanged, result.Outcomes[2].Action)
	assert.Equal(t, 2, result.Counts.Transferred)
	assert.Equal(t, 1, result.Counts.Unchanged)
}

func TestExecute_RenameConflictSkip(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "A", "x1.txt": "X"})

	batch := pick(t, env, "a.txt")
	batch[0].TargetName = "x1"

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{Entries: batch, Operation: types.OperationRename, Policy: types.PolicySkip})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Counts.Skipped)
	assert.Equal(t, "X", env.ReadFile(filepath.Join(env.SourceDir, "x1.txt")))
	assert.Equal(t, "A", env.ReadFile(filepath.Join(env.SourceDir, "a.txt")))
}

func TestExecute_SourceMissingDoesNotStopSiblings(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "A", "b.txt": "B"})
	batch := pick(t, env, "a.txt", "b.txt")
	require.NoError(t, env.FS.Remove(filepath.Join(env.SourceDir, "a.txt")))

	x := transfer.NewExecutor(env.FS, transfer.Options{})
	result, err := x.Execute(transfer.Request{Entries: batch, Destination: env.DestDir, Operation: types.OperationMove})
	require.NoError(t, err)

	assert.Equal(t, types.StatusPartialFailure, result.Status)
	assert.Equal(t, types.ActionFailed, result.Outcomes[0].Action)
	assert.True(t, errors.IsErrorCode(result.Outcomes[0].Error, errors.ErrSourceMissing))
	assert.Equal(t, types.ActionTransferred, result.Outcomes[1].Action)
	assert.Equal(t, "B", env.ReadFile(filepath.Join(env.DestDir, "b.txt")))
}

func TestExecute_DryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "new", "b.txt": "B"})
	env.WriteFile(env.DestDir, "a.txt", "old")

	x := transfer.NewExecutor(env.FS, transfer.Options{DryRun: true})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt", "b.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationMove,
		Policy:      types.PolicyOverwrite,
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, types.StatusSuccess, result.Status)
	for _, o := range result.Outcomes {
		assert.True(t, o.DryRun)
		assert.Equal(t, types.ActionTransferred, o.Action)
	}
	assert.True(t, result.Outcomes[0].Replaced)
	assert.Equal(t, "old", env.ReadFile(filepath.Join(env.DestDir, "a.txt")))
	assert.Equal(t, []string{"a.txt", "b.txt"}, env.ListNames(env.SourceDir))
}

func TestExecute_Progress(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "", "b.txt": "", "c.txt": ""})

	var calls [][2]int
	x := transfer.NewExecutor(env.FS, transfer.Options{
		Progress: func(done, total int) { calls = append(calls, [2]int{done, total}) },
	})
	_, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt", "b.txt", "c.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
	})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
}

func TestExecute_TargetNamesStayInsideDestination(t *testing.T) {
	for _, base := range []string{"../victim", "sub/victim"} {
		t.Run(base, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
			env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "payload", "b.txt": "B"})
			env.WriteFile("/virtual", "victim1.txt", "keep me")
			require.NoError(t, env.FS.MkdirAll(filepath.Join(env.DestDir, "sub"), 0755))
			env.WriteFile(filepath.Join(env.DestDir, "sub"), "victim1.txt", "keep me")

			batch := pick(t, env, "a.txt", "b.txt")
			batch[0].TargetName = base + "1"

			x := transfer.NewExecutor(env.FS, transfer.Options{})
			result, err := x.Execute(transfer.Request{
				Entries:     batch,
				Destination: env.DestDir,
				Operation:   types.OperationMove,
				Policy:      types.PolicyOverwrite,
			})
			require.NoError(t, err)

			assert.Equal(t, types.StatusPartialFailure, result.Status)
			assert.Equal(t, types.ActionFailed, result.Outcomes[0].Action)
			assert.True(t, errors.IsErrorCode(result.Outcomes[0].Error, errors.ErrPathInvalid))
			assert.Empty(t, result.Outcomes[0].Destination)
			assert.Equal(t, types.ActionTransferred, result.Outcomes[1].Action)

			assert.Equal(t, "keep me", env.ReadFile("/virtual/victim1.txt"))
			assert.Equal(t, "keep me", env.ReadFile(filepath.Join(env.DestDir, "sub", "victim1.txt")))
			assert.Equal(t, "payload", env.ReadFile(filepath.Join(env.SourceDir, "a.txt")))
		})
	}
}

func TestExecute_CreateCopyAlternateMustBeAName(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.WriteFile(env.SourceDir, "a.txt", "new")
	env.WriteFile(env.DestDir, "a.txt", "old")

	x := transfer.NewExecutor(env.FS, transfer.Options{CopySuffix: "/../copy"})
	result, err := x.Execute(transfer.Request{
		Entries:     pick(t, env, "a.txt"),
		Destination: env.DestDir,
		Operation:   types.OperationCopy,
		Policy:      types.PolicyCreateCopy,
	})
	require.NoError(t, err)

	assert.True(t, errors.IsErrorCode(result.Outcomes[0].Error, errors.ErrPathInvalid))
	assert.Equal(t, []string{"a.txt"}, env.ListNames(env.DestDir))
	assert.Equal(t, "old", env.ReadFile(filepath.Join(env.DestDir, "a.txt")))
}

func TestExecute_OverlongTargetFailsAlone(t *testing.T) {
	for _, op := range []types.Operation{types.OperationRename, types.OperationMove, types.OperationCopy} {
		t.Run(string(op), func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
			env.WriteFiles(env.SourceDir, map[string]string{"a.txt": "A", "b.txt": "B"})

			batch := pick(t, env, "a.txt", "b.txt")
			batch[0].TargetName = strings.Repeat("n", 300)
			batch[1].TargetName = "ok"

			req := transfer.Request{Entries: batch, Operation: op}
			dir := env.SourceDir
			if op != types.OperationRename {
				req.Destination = env.DestDir
				dir = env.DestDir
			}

			result, err := transfer.NewExecutor(env.FS, transfer.Options{}).Execute(req)
			require.NoError(t, err)

			assert.Equal(t, types.StatusPartialFailure, result.Status)
			assert.True(t, errors.IsErrorCode(result.Outcomes[0].Error, errors.ErrPathInvalid), "got %v", result.Outcomes[0].Error)
			assert.Equal(t, types.ActionTransferred, result.Outcomes[1].Action)
			assert.True(t, env.Exists(filepath.Join(env.SourceDir, "a.txt")))
			assert.Equal(t, "B", env.ReadFile(filepath.Join(dir, "ok.txt")))
		})
	}
}
