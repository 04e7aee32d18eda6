package core

import (
	"fmt"
	"os"
	"path/filepath"
)

type Paths struct {
	HomeDir    string
	DataDir    string
	LogFile    string
	ConfigFile string

	// dataDirErr is why DataDir could not be created, if it could not.
	dataDirErr error
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		defaultPaths = resolvePaths()
	}
}

// resolvePaths places the data directory under the user's home, falling back
// to the temp dir on systems without one. A failure to create the directory
// is kept for EnsureDataDir; only the log file depends on it.
func resolvePaths() *Paths {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.TempDir()
	}

	dataDir := filepath.Join(homeDir, ".agentchat")
	var dataDirErr error
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		dataDirErr = fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	return &Paths{
		HomeDir:    homeDir,
		DataDir:    dataDir,
		LogFile:    filepath.Join(dataDir, "agentchat.log"),
		ConfigFile: filepath.Join(dataDir, "config.yaml"),
		dataDirErr: dataDirErr,
	}
}

// EnsureDataDir reports whether the data directory exists, returning the
// creation error otherwise.
func EnsureDataDir() error {
	ensureDefaultPaths()
	return defaultPaths.dataDirErr
}

func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
