// Package paths provides centralized path handling for rebatch.
//
// It resolves the XDG locations rebatch reads and writes outside of the
// directories it is asked to organize:
//
//   - Config: $XDG_CONFIG_HOME/rebatch (config.toml or config.yaml)
//   - State: $XDG_STATE_HOME/rebatch (rebatch.log)
//
// # Environment Variables
//
//   - REBATCH_CONFIG_DIR: Override the config directory
//   - REBATCH_STATE_DIR: Override the state directory
//
// It also normalizes user supplied directories (expanding ~ and making them
// absolute) so the engine only ever sees native absolute paths.
package paths
