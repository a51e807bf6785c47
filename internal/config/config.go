// Package config layers pulseagent's settings: flag > environment
// (PULSEAGENT_*) > config file > default. Builds a viper.Viper, seeds it
// via SetDefaults, and unmarshals into a typed struct.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is pulseagent's full option set, per the Capture/Predictor/
// Execution/Ledger/Replay option groups.
type Config struct {
	Capture   CaptureConfig   `mapstructure:"capture"`
	Predictor PredictorConfig `mapstructure:"predictor"`
	Execution ExecutionConfig `mapstructure:"execution"`
	Replay    ReplayConfig    `mapstructure:"replay"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Log       LogConfig       `mapstructure:"log"`
}

type CaptureConfig struct {
	FPS              int `mapstructure:"fps"`
	BufferSeconds    int `mapstructure:"buffer_seconds"`
	PauseThresholdMs int `mapstructure:"pause_threshold_ms"`
	MonitorWidth     int `mapstructure:"monitor_width"`
	MonitorHeight    int `mapstructure:"monitor_height"`
}

type PredictorConfig struct {
	Backend       string        `mapstructure:"backend"` // http, claude, openai
	Endpoint      string        `mapstructure:"endpoint"`
	APIKey        string        `mapstructure:"api_key"`
	Model         string        `mapstructure:"model"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MinConfidence float64       `mapstructure:"min_confidence"`
}

type ExecutionConfig struct {
	MinDelayMs      int   `mapstructure:"min_delay_ms"`
	MaxDelayMs      int   `mapstructure:"max_delay_ms"`
	CoolingPeriodMs int   `mapstructure:"cooling_period_ms"`
	Seed            int64 `mapstructure:"seed"`
}

type ReplayConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Dir          string `mapstructure:"dir"`
	MaxWidth     uint   `mapstructure:"max_width"`
	FPS          int    `mapstructure:"fps"`
	CursorColor  string `mapstructure:"cursor_color"`  // hex RRGGBB
	CursorRadius int    `mapstructure:"cursor_radius"` // pixels
	RippleColor  string `mapstructure:"ripple_color"`  // hex RRGGBB
}

type LedgerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// EnvPrefix is the environment-variable namespace, per PULSEAGENT_CAPTURE_FPS
// style overrides.
const EnvPrefix = "PULSEAGENT"

// SetDefaults seeds v with pulseagent's defaults.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("capture.fps", 3)
	v.SetDefault("capture.buffer_seconds", 4)
	v.SetDefault("capture.pause_threshold_ms", 1000)
	v.SetDefault("capture.monitor_width", 0)
	v.SetDefault("capture.monitor_height", 0)

	v.SetDefault("predictor.backend", "http")
	v.SetDefault("predictor.endpoint", "")
	v.SetDefault("predictor.model", "")
	v.SetDefault("predictor.timeout", "500ms")
	v.SetDefault("predictor.min_confidence", 0.80)

	v.SetDefault("execution.min_delay_ms", 100)
	v.SetDefault("execution.max_delay_ms", 300)
	v.SetDefault("execution.cooling_period_ms", 500)
	v.SetDefault("execution.seed", time.Now().UnixNano())

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.dir", "replays")
	v.SetDefault("replay.max_width", 800)
	v.SetDefault("replay.fps", 3)
	v.SetDefault("replay.cursor_color", "1A73E8")
	v.SetDefault("replay.cursor_radius", 6)
	v.SetDefault("replay.ripple_color", "1A73E8")

	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.db_path", "pulseagent.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load builds a viper instance layered flag > env > file > default and
// unmarshals it into a Config. cfgFile may be empty, in which case only
// ./pulseagent.yaml (if present) is consulted. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pulseagent")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}
