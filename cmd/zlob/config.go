package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dmtrKovalenko/zlob"
)

// flagConfig is the CLI's bound request struct: every flag lands here
// before being translated into zlob.Flag bits and zlob.Option values. It
// is validated via go-playground/validator before any glob call runs.
// mapstructure tags match the pflag names verbatim (dashes, not
// underscores): viper.BindPFlags registers each flag under its own Name, and
// Unmarshal only overwrites a field when its tag matches that key.
type flagConfig struct {
	Err        bool `mapstructure:"err"`
	Mark       bool `mapstructure:"mark"`
	NoSort     bool `mapstructure:"no-sort"`
	NoCheck    bool `mapstructure:"no-check"    validate:"excluded_with=Append"`
	Append     bool `mapstructure:"append"      validate:"excluded_with=NoCheck"`
	NoEscape   bool `mapstructure:"no-escape"`
	Period     bool `mapstructure:"period"`
	Brace      bool `mapstructure:"brace"`
	Tilde      bool `mapstructure:"tilde"`
	TildeCheck bool `mapstructure:"tilde-check" validate:"excluded_without=Tilde"`
	OnlyDir    bool `mapstructure:"only-dir"`
	Gitignore  bool `mapstructure:"gitignore"`
	Recursive  bool   `mapstructure:"recursive"`
	Extglob    bool   `mapstructure:"extglob"`
	CaseFold   bool   `mapstructure:"case-fold"`
	IgnoreFile string `mapstructure:"ignore-file"`
}

var validate = validator.New()

func (c flagConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid flag combination: %w", err)
	}

	return nil
}

func (c flagConfig) toFlag() zlob.Flag {
	var f zlob.Flag

	set := func(cond bool, bit zlob.Flag) {
		if cond {
			f |= bit
		}
	}

	set(c.Err, zlob.ERR)
	set(c.Mark, zlob.MARK)
	set(c.NoSort, zlob.NOSORT)
	set(c.NoCheck, zlob.NOCHECK)
	set(c.Append, zlob.APPEND)
	set(c.NoEscape, zlob.NOESCAPE)
	set(c.Period, zlob.PERIOD)
	set(c.Brace, zlob.BRACE)
	set(c.Tilde, zlob.TILDE)
	set(c.TildeCheck, zlob.TILDECHECK)
	set(c.OnlyDir, zlob.ONLYDIR)
	set(c.Gitignore, zlob.GITIGNORE)
	set(c.Recursive, zlob.DOUBLESTARRECURSIVE)
	set(c.Extglob, zlob.EXTGLOB)

	return f
}

// loadConfig layers flag defaults from an optional .zlobrc (YAML/TOML/JSON,
// auto-detected by viper) under whatever pflag values the caller actually
// passed on the command line — the same default-then-override precedence
// idelchi-go-gitignore's own indirect viper dependency implies for its
// parent tool.
func loadConfig() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(".zlobrc")
	v.AddConfigPath(".")
	v.SetEnvPrefix("ZLOB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .zlobrc: %w", err)
		}
	}

	return v, nil
}

// applyConfigLayer layers .zlobrc/environment defaults under fs's
// already-parsed flag values: any flag the caller explicitly passed wins
// (viper.BindPFlag gives a changed flag priority over the bound config
// key), anything left at its pflag default falls back to .zlobrc or
// ZLOB_* environment values, and cfg is re-populated from the merged
// result.
func applyConfigLayer(fs *pflag.FlagSet, cfg *flagConfig) error {
	v, err := loadConfig()
	if err != nil {
		return err
	}

	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("binding flags to config: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("applying .zlobrc layer: %w", err)
	}

	return nil
}
