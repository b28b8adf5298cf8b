package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/rebatch/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for rebatch
	EnvConfigDir = "REBATCH_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for rebatch
	EnvStateDir = "REBATCH_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name used under every XDG base directory
	AppDirName = "rebatch"

	// LogFileName is the name of the log file
	LogFileName = "rebatch.log"
)

// ConfigFileNames lists the user config files looked up in ConfigDir, in priority order
var ConfigFileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Paths resolves rebatch's own locations
type Paths interface {
	ConfigDir() string
	StateDir() string
	LogFilePath() string
	ConfigFile() string
}

type paths struct {
	xdgConfig string
	xdgState  string
}

// New creates a Paths instance, respecting environment overrides
func New() Paths {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.xdgConfig = ExpandHome(dir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.xdgState = ExpandHome(dir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

// ConfigDir returns the config directory for rebatch
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the state directory for rebatch
func (p *paths) StateDir() string {
	return p.xdgState
}

// LogFilePath returns the path of the append-only log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ConfigFile returns the first existing user config file, or "" when there is none
func (p *paths) ConfigFile() string {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(p.xdgConfig, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

// Normalize expands ~ and returns a cleaned absolute path
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrPathInvalid, "path is empty")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathInvalid, "cannot resolve %s", path)
	}
	return filepath.Clean(abs), nil
}
