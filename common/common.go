package common

import (
	"io/fs"
	"path/filepath"
)

const (
	AppName = "xmupgrade"

	// ConfigDirName is the directory under the user's config home holding the config file.
	ConfigDirName  = ".config/" + AppName
	ConfigFileName = "config.yaml"
)

// DefaultConfigPath returns the config file location under home.
func DefaultConfigPath(home string) string {
	return filepath.Join(home, ConfigDirName, ConfigFileName)
}

// Log field keys used across packages.
const (
	RunID   = "Run"
	StepID  = "Step"
	StepKey = "Key"
	Attempt = "Attempt"
	Host    = "Host"
)

const (
	// FileMode0755 represents rwxr-xr-x
	FileMode0755 fs.FileMode = 0755
	// FileMode0644 represents rw-r--r--
	FileMode0644 fs.FileMode = 0644
)

const (
	DefaultSSHPort     = 22
	DefaultSudoCommand = "sudo"
	DefaultLogLevel    = "info"
)
