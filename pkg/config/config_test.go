package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/paths"
	"github.com/arthur-debert/rebatch/pkg/types"
	"github.com/arthur-debert/rebatch/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config lookup at an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	return dir
}

func TestDefaults(t *testing.T) {
	cfg, err := Defaults()
	require.NoError(t, err)

	assert.True(t, cfg.Listing.IncludeHidden)
	assert.Equal(t, view.SortName, cfg.Listing.Sort)
	assert.False(t, cfg.Listing.Descending)
	assert.Equal(t, "ask", cfg.Transfer.OnConflict)
	assert.Equal(t, " (Copy)", cfg.Transfer.CopySuffix)
	assert.True(t, cfg.Transfer.Progress)
	assert.False(t, cfg.Transfer.DryRun)
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Equal(t, types.PolicyNone, cfg.Policy())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoUserFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	defaults, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}

func TestLoad_UserFiles(t *testing.T) {
	t.Run("toml in config dir", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[listing]
sort = "size"
descending = true

[transfer]
on_conflict = "overwrite"
`), 0644))

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, view.SortSize, cfg.Listing.Sort)
		assert.Equal(t, view.Descending, cfg.SortDirection())
		assert.Equal(t, types.PolicyOverwrite, cfg.Policy())
		assert.Equal(t, " (Copy)", cfg.Transfer.CopySuffix, "unset keys keep their defaults")
	})

	t.Run("explicit yaml file", func(t *testing.T) {
		isolate(t)
		path := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rename:\n  base: trip\n  code: \"-\"\ntransfer:\n  on_conflict: copy\n"), 0644))

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)
		assert.Equal(t, "trip", cfg.Rename.Base)
		assert.Equal(t, "-", cfg.Rename.Code)
		assert.Equal(t, types.PolicyCreateCopy, cfg.Policy())
	})
}

func TestLoad_EnvironmentAndOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("REBATCH_TRANSFER__ON_CONFLICT", "skip")
	t.Setenv("REBATCH_LISTING__INCLUDE_HIDDEN", "false")
	t.Setenv("REBATCH_TRANSFER__DRY_RUN", "false")

	cfg, err := Load(LoadOptions{Overrides: map[string]interface{}{
		"transfer.dry_run": true,
		"output.format":    "JSON",
	}})
	require.NoError(t, err)

	assert.Equal(t, types.PolicySkip, cfg.Policy())
	assert.False(t, cfg.Listing.IncludeHidden)
	assert.True(t, cfg.Transfer.DryRun, "overrides beat the environment")
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"bad policy", "[transfer]\non_conflict = \"merge\"\n", errors.ErrConfigValid},
		{"bad sort key", "[listing]\nsort = \"colour\"\n", errors.ErrConfigValid},
		{"bad format", "[output]\nformat = \"xml\"\n", errors.ErrConfigValid},
		{"suffix with separator", "[transfer]\ncopy_suffix = \"/copy\"\n", errors.ErrConfigValid},
		{"empty suffix", "[transfer]\ncopy_suffix = \"\"\n", errors.ErrConfigValid},
		{"broken toml", "[transfer\n", errors.ErrConfigParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(LoadOptions{ConfigFile: path})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		isolate(t)
		_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "transfer.on_conflict", envKey("REBATCH_TRANSFER__ON_CONFLICT"))
	assert.Equal(t, "listing.include_hidden", envKey("REBATCH_LISTING__INCLUDE_HIDDEN"))
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "\n[transfer]\n")
	assert.Contains(t, content, `# on_conflict = "ask"`)
	assert.Contains(t, content, "# Inserted before the extension by the copy policy")

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "#"), "line not commented: %q", line)
	}
}
