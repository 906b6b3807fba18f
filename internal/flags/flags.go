// Package flags contains CLI helpers shared by the hnslite commands.
package flags

import (
	"github.com/urfave/cli/v2"

	"github.com/hnslite/hnslite/params"
)

// Flag categories, used to group the help output.
const (
	ChainCategory   = "CHAIN"
	LoggingCategory = "LOGGING"
	APICategory     = "API"
)

// NewApp creates an app with sane defaults.
func NewApp(usage string) *cli.App {
	app := cli.NewApp()
	app.EnableBashCompletion = true
	app.Version = params.Version
	app.Usage = usage
	return app
}

// Merge merges the given flag slices.
func Merge(groups ...[]cli.Flag) []cli.Flag {
	var ret []cli.Flag
	for _, group := range groups {
		ret = append(ret, group...)
	}
	return ret
}
