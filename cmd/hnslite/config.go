package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"unicode"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/naoina/toml"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ethereum/go-ethereum/log"

	"github.com/hnslite/hnslite/params"
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
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type hnsliteConfig struct {
	Node nodeConfig
}

type nodeConfig struct {
	Network     string // mainnet, testnet or regtest
	DataDir     string
	HeadersFile string
	HTTPAddr    string
	Verbosity   int
	LogFile     string
}

func defaultNodeConfig() nodeConfig {
	return nodeConfig{
		Network:   "mainnet",
		DataDir:   defaultDataDir(),
		Verbosity: 3,
	}
}

// chainConfig maps the configured network name to its consensus parameters.
func (c *nodeConfig) chainConfig() (*params.ChainConfig, error) {
	switch c.Network {
	case "mainnet":
		return params.MainnetChainConfig, nil
	case "testnet":
		return params.TestnetChainConfig, nil
	case "regtest":
		return params.RegtestChainConfig, nil
	}
	return nil, fmt.Errorf("unknown network %q", c.Network)
}

func loadConfig(file string, cfg *hnsliteConfig) error {
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

// loadBaseConfig loads the configuration from defaults, config file and
// command line flags, in increasing priority.
func loadBaseConfig(ctx *cli.Context) hnsliteConfig {
	cfg := hnsliteConfig{
		Node: defaultNodeConfig(),
	}

	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	switch {
	case ctx.Bool(mainnetFlag.Name):
		cfg.Node.Network = "mainnet"
	case ctx.Bool(testnetFlag.Name):
		cfg.Node.Network = "testnet"
	case ctx.Bool(regtestFlag.Name):
		cfg.Node.Network = "regtest"
	}
	if ctx.IsSet(dataDirFlag.Name) {
		cfg.Node.DataDir = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(headersFileFlag.Name) {
		cfg.Node.HeadersFile = ctx.String(headersFileFlag.Name)
	}
	if ctx.IsSet(httpAddrFlag.Name) {
		cfg.Node.HTTPAddr = ctx.String(httpAddrFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Node.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logFileFlag.Name) {
		cfg.Node.LogFile = ctx.String(logFileFlag.Name)
	}
	return cfg
}

// setupLogging routes the root logger to the terminal and, when configured,
// a rotated log file.
func setupLogging(cfg *nodeConfig) error {
	usecolor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("TERM") != "dumb"

	var output io.Writer = colorable.NewColorableStderr()
	if cfg.LogFile != "" {
		output = io.MultiWriter(output, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 10,
		})
		usecolor = false
	}
	handler := log.StreamHandler(output, log.TerminalFormat(usecolor))
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), handler))
	return nil
}

func splitBanner(banner string) []string {
	return strings.Split(strings.TrimRight(banner, "\n"), "\n")
}
