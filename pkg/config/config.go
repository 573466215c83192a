/*
Package config manages TOML configuration for the segmentation engine.

InitConfig handles automatic config file creation and loading with fallback
to defaults. LoadConfig and SaveConfig provide direct fs access for runtime
changes.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure.
type Config struct {
	Automaton AutomatonConfig `toml:"automaton"`
	Segmenter SegmenterConfig `toml:"segmenter"`
}

// AutomatonConfig holds limits enforced during insert/build.
type AutomatonConfig struct {
	// MaxFrequency is the ceiling an accepting node's end counter may
	// reach before insert reports FrequencyOverflow.
	MaxFrequency uint32 `toml:"max_frequency"`
	// MaxUTF8Length is the ceiling a keyword's UTF-8 character count may
	// reach before insert reports LengthOverflow.
	MaxUTF8Length uint32 `toml:"max_utf8_length"`
	// InitNodeCapacity is the initial capacity reserved for the trie's
	// node slice, amortizing growth during large dictionary loads.
	InitNodeCapacity int `toml:"init_node_capacity"`
}

// SegmenterConfig holds tunables for the cut() DP.
type SegmenterConfig struct {
	// RunGluePenaltyDivisor divides min_prob when gluing a digit or
	// alphabetic run into a single token (spec default: 2, i.e. half the
	// single-character floor).
	RunGluePenaltyDivisor float64 `toml:"run_glue_penalty_divisor"`
}

// DefaultConfig returns a Config with the values used by the reference
// automaton: MAX_FREQ = 1<<24, MAX_UTF8_LEN = 1<<8, INIT_SIZE = 2048, and a
// run-glue divisor of 2.
func DefaultConfig() *Config {
	return &Config{
		Automaton: AutomatonConfig{
			MaxFrequency:     1 << 24,
			MaxUTF8Length:    1 << 8,
			InitNodeCapacity: 2048,
		},
		Segmenter: SegmenterConfig{
			RunGluePenaltyDivisor: 2,
		},
	}
}

// InitConfig loads config from file or creates the default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		log.Debugf("created default config file at: ( %s )", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Errorf("failed to decode config file: %v", err)
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}
