package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is bpinspect's on-disk inspection profile: a list of default
// paths plus a verbosity switch. DefaultPaths is parsed but not used by
// the CLI; a file path argument is always required.
type Config struct {
	DefaultPaths []string `yaml:"defaultPaths"`
	Verbose      bool     `yaml:"verbose"`
}

// loadConfig reads ./.bpinspect.yaml if present, falling back to
// ~/.bpinspect.yaml. A missing file is not an error: it yields a zero
// Config, exactly as if an empty file had been read.
func loadConfig() (*Config, error) {
	for _, candidate := range configCandidates() {
		content, err := os.ReadFile(candidate)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}

		cfg := &Config{}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return &Config{}, nil
}

func configCandidates() []string {
	candidates := []string{".bpinspect.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".bpinspect.yaml"))
	}

	return candidates
}
