package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/urfave/cli.v1"

	"educode-lang/impl/internal/interpreter"
	"educode-lang/impl/internal/log"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[file]",
		Description: `The dumpconfig command shows the effective configuration as TOML.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type logConfig struct {
	Verbosity int  // 0=crit .. 5=trace
	Color     bool // colorize terminal output
}

type educodeConfig struct {
	Interpreter interpreter.Config
	Log         logConfig
}

func defaultConfig() educodeConfig {
	return educodeConfig{
		Interpreter: interpreter.DefaultConfig,
		Log:         logConfig{Verbosity: 2, Color: true},
	}
}

func loadConfig(file string, cfg *educodeConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// applyEnv overrides cfg from EDUCODE_* environment variables.
func applyEnv(cfg *educodeConfig) {
	if env.Has("EDUCODE_VERBOSITY") {
		cfg.Log.Verbosity = env.Int("EDUCODE_VERBOSITY", cfg.Log.Verbosity)
	}
	if env.Bool("EDUCODE_NOCOLOR") {
		cfg.Log.Color = false
	}
	if env.Has("EDUCODE_CACHE") {
		cfg.Interpreter.ExprCacheSize = env.Int("EDUCODE_CACHE", cfg.Interpreter.ExprCacheSize)
	}
}

// makeConfig layers defaults, the config file, the environment and flags.
func makeConfig(ctx *cli.Context) (educodeConfig, error) {
	cfg := defaultConfig()
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)

	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalBool(noColorFlag.Name) {
		cfg.Log.Color = false
	}
	if ctx.GlobalBool(traceFlag.Name) {
		cfg.Interpreter.Trace = true
	}
	if cfg.Interpreter.Trace && cfg.Log.Verbosity < int(log.LvlTrace) {
		cfg.Log.Verbosity = int(log.LvlTrace)
	}
	return cfg, nil
}

// setupLogging installs the root log handler described by cfg. At trace
// verbosity every record also carries its call site.
func setupLogging(cfg logConfig) {
	lvl := log.LvlFromVerbosity(cfg.Verbosity)
	log.PrintOrigins(lvl == log.LvlTrace)
	log.Root().SetHandler(log.StderrHandler(lvl, cfg.Color))
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	_, err = dump.Write(out)
	return err
}
