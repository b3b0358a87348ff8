// Package config handles citejump configuration: text-sample tuning, score
// overrides, and the default bibliography path.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matsen/citejump/internal/match"
	"github.com/matsen/citejump/internal/textsample"
)

// Config is the on-disk configuration. All fields are optional; zero values
// fall back to built-in defaults.
type Config struct {
	RefsPath string             `yaml:"refs_path,omitempty"` // Default bibliography JSONL
	Sample   SampleConfig       `yaml:"sample,omitempty"`
	Scores   map[string]float64 `yaml:"scores,omitempty"` // Named score overrides
}

// SampleConfig tunes the text-sample builder.
type SampleConfig struct {
	MaxTailPages int   `yaml:"max_tail_pages,omitempty"`
	MaxTailChars int   `yaml:"max_tail_chars,omitempty"`
	PageSteps    []int `yaml:"page_steps,omitempty"`
	CharSteps    []int `yaml:"char_steps,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citejump"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/citejump/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the config at path, or the default location when path is
// empty. A missing file yields an empty config, not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		if configCache != nil {
			return configCache, nil
		}
		path = Path()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.RefsPath != "" {
		cfg.RefsPath = ExpandTilde(cfg.RefsPath)
	}

	if !explicit {
		configCache = &cfg
	}
	return &cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// SampleOptions converts the sample tuning into builder options.
func (c *Config) SampleOptions() textsample.Options {
	return textsample.Options{
		MaxTailPages: c.Sample.MaxTailPages,
		MaxTailChars: c.Sample.MaxTailChars,
		PageSteps:    c.Sample.PageSteps,
		CharSteps:    c.Sample.CharSteps,
	}
}

// MatchScores returns the default score set with any named overrides
// applied. Unknown names are reported as an error rather than silently
// ignored, since a typo here would quietly distort every resolution.
func (c *Config) MatchScores() (*match.Scores, error) {
	sc := match.DefaultScores()
	for name, value := range c.Scores {
		if err := applyScore(sc, name, value); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

func applyScore(sc *match.Scores, name string, value float64) error {
	switch name {
	case "arxiv_exact":
		sc.ArxivExact = value
	case "doi_exact":
		sc.DOIExact = value
	case "journal_volume":
		sc.JournalVolume = value
	case "volume_page":
		sc.VolumePage = value
	case "page_bonus":
		sc.PageBonus = value
	case "author_bonus":
		sc.AuthorBonus = value
	case "year_bonus":
		sc.YearBonus = value
	case "precise_accept":
		sc.PreciseAccept = value
	case "precise_high":
		sc.PreciseHigh = value
	case "year_exact":
		sc.YearExact = value
	case "year_near":
		sc.YearNear = value
	case "author_full":
		sc.AuthorFull = value
	case "author_partial":
		sc.AuthorPartial = value
	case "first_author":
		sc.FirstAuthor = value
	case "overlap_step":
		sc.OverlapStep = value
	case "overlap_cap":
		sc.OverlapCap = value
	case "count_match":
		sc.CountMatch = value
	case "count_mismatch":
		sc.CountMismatch = value
	case "initials_match":
		sc.InitialsMatch = value
	case "initials_conflict":
		sc.InitialsConflict = value
	case "hint_volume":
		sc.HintVolume = value
	case "hint_page":
		sc.HintPage = value
	case "fuzzy_floor":
		sc.FuzzyFloor = value
	case "fuzzy_medium":
		sc.FuzzyMedium = value
	case "fuzzy_high":
		sc.FuzzyHigh = value
	case "fuzzy_window":
		sc.FuzzyWindow = value
	default:
		return fmt.Errorf("unknown score name %q", name)
	}
	return nil
}
