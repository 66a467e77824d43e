package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.gatech.edu/ECEInnovation/JCPU-Assembler/assembler"
)

const DefaultConfigPath = "jcpuasm.json"

type Config struct {
	Sources        []string `json:"sources"` // files or glob patterns, relative to the config file
	OutputDir      string   `json:"outputDir"`
	StrictLabels   bool     `json:"strictLabels"`
	ExtendedGuards bool     `json:"extendedGuards"`
	Listing        bool     `json:"listing"` // also write a .lst next to each .bin
	ReportPath     string   `json:"reportPath"`

	dir string // directory holding the config file
}

// LoadConfig reads a project file. Relative paths in it are resolved against
// the directory the file lives in.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	conf := new(Config)
	if err := json.Unmarshal(b, conf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(conf.Sources) == 0 {
		return nil, fmt.Errorf("%s: no sources listed", path)
	}
	if conf.OutputDir == "" {
		conf.OutputDir = "build"
	}
	conf.dir = filepath.Dir(path)
	return conf, nil
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dir, path)
}

// AssemblerConfig is the assembler configuration the project asks for.
func (c *Config) AssemblerConfig() assembler.Config {
	return assembler.Config{
		StrictLabels:   c.StrictLabels,
		ExtendedGuards: c.ExtendedGuards,
	}
}

// SourceFiles expands the source patterns in order, dropping duplicates.
func (c *Config) SourceFiles() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range c.Sources {
		matches, err := filepath.Glob(c.resolve(pattern))
		if err != nil {
			return nil, fmt.Errorf("source pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// keep it so the missing file shows up as a failure
			matches = []string{c.resolve(pattern)}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// ReportFile is the resolved report path, empty when no report is wanted.
func (c *Config) ReportFile() string {
	return c.resolve(c.ReportPath)
}
