package config

import (
	"os"
	"path/filepath"
)

// Paths resolves the directories used for exports and logs relative to the
// working directory unless configured absolute.
type Paths struct {
	DataDir    string
	ExportsDir string
	LogsDir    string
}

// NewPaths builds a Paths from the configured directories
func NewPaths(cfg PathsConfig) *Paths {
	return &Paths{
		DataDir:    cfg.DataDir,
		ExportsDir: cfg.ExportsDir,
		LogsDir:    cfg.LogsDir,
	}
}

// EnsureDirectories creates all required directories
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ExportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// GetExportPath returns the full path for an export file
func (p *Paths) GetExportPath(filename string) string {
	return filepath.Join(p.ExportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists reports whether the given path exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
