// Package config builds the immutable run configuration from flags,
// environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. EBS_AUTOSNAP_REGION
const EnvPrefix = "EBS_AUTOSNAP"

// Defaults
const (
	DefaultLogFile       = "/var/log/ebs-autosnap.log"
	DefaultLogMaxLines   = 5000
	DefaultRetentionDays = 7
)

// Keys shared by flags, environment and config file
const (
	KeyRegion           = "region"
	KeyLogFile          = "log-file"
	KeyLogMaxLines      = "log-max-lines"
	KeyRetentionDays    = "retention-days"
	KeyDryRun           = "dry-run"
	KeyMetricsNamespace = "metrics-namespace"
	KeyConfigFile       = "config"
)

// Config holds everything a run needs. It is built once and passed by value.
type Config struct {
	Region           string // empty means resolve from instance metadata
	LogFile          string
	LogMaxLines      int
	RetentionDays    int
	DryRun           bool
	MetricsNamespace string // empty disables CloudWatch metrics
}

// BindFlags registers the configuration flags on fs
func BindFlags(fs *pflag.FlagSet) {
	fs.String(KeyRegion, "", "AWS region (default: instance metadata region, then us-east-1)")
	fs.String(KeyLogFile, DefaultLogFile, "log file path")
	fs.Int(KeyLogMaxLines, DefaultLogMaxLines, "number of log lines kept when the log file is truncated")
	fs.Int(KeyRetentionDays, DefaultRetentionDays, "delete managed snapshots created this many days ago or earlier")
	fs.Bool(KeyDryRun, false, "log retention decisions without deleting snapshots")
	fs.String(KeyMetricsNamespace, "", "publish run metrics to this CloudWatch namespace")
	fs.String(KeyConfigFile, "", "optional YAML config file")
}

// Load resolves the configuration. Precedence: flags, environment, config file, defaults.
func Load(fs *pflag.FlagSet) (Config, error) {
	v, err := newViper(fs)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Region:           v.GetString(KeyRegion),
		LogFile:          v.GetString(KeyLogFile),
		LogMaxLines:      v.GetInt(KeyLogMaxLines),
		RetentionDays:    v.GetInt(KeyRetentionDays),
		DryRun:           v.GetBool(KeyDryRun),
		MetricsNamespace: v.GetString(KeyMetricsNamespace),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LogFileFor returns the log file path a run with these flags would use,
// without validating anything else. It lets callers log errors that happen
// before Load succeeds.
func LogFileFor(fs *pflag.FlagSet) string {
	v, _ := newViper(fs)
	if v == nil {
		return DefaultLogFile
	}
	if path := v.GetString(KeyLogFile); path != "" {
		return path
	}
	return DefaultLogFile
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyLogFile, DefaultLogFile)
	v.SetDefault(KeyLogMaxLines, DefaultLogMaxLines)
	v.SetDefault(KeyRetentionDays, DefaultRetentionDays)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("error binding flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return v, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	return v, nil
}

// Validate rejects values that would make a run meaningless
func (c Config) Validate() error {
	var errs []error
	if c.LogFile == "" {
		errs = append(errs, errors.New("log file path must not be empty"))
	}
	if c.LogMaxLines <= 0 {
		errs = append(errs, fmt.Errorf("log max lines must be positive, got %d", c.LogMaxLines))
	}
	if c.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("retention days must not be negative, got %d", c.RetentionDays))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
