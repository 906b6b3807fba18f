// hnslite is a header-only client for the name chain: it tracks the
// proof-of-work header chain and serves the safe name-tree root to resolvers.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/urfave/cli/v2"

	"github.com/ethereum/go-ethereum/log"

	"github.com/hnslite/hnslite/core"
	"github.com/hnslite/hnslite/internal/flags"
	"github.com/hnslite/hnslite/timedata"
)

const clientIdentifier = "hnslite" // Client identifier

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.ChainCategory,
	}
	dataDirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Data directory for the lock file and logs",
		Value:    defaultDataDir(),
		Category: flags.ChainCategory,
	}
	mainnetFlag = &cli.BoolFlag{
		Name:     "mainnet",
		Usage:    "Main network",
		Category: flags.ChainCategory,
	}
	testnetFlag = &cli.BoolFlag{
		Name:     "testnet",
		Usage:    "Test network",
		Category: flags.ChainCategory,
	}
	regtestFlag = &cli.BoolFlag{
		Name:     "regtest",
		Usage:    "Local regression test network",
		Category: flags.ChainCategory,
	}
	headersFileFlag = &cli.StringFlag{
		Name:     "import",
		Usage:    "File of hex-encoded headers to import on startup, one per line",
		Category: flags.ChainCategory,
	}
	httpAddrFlag = &cli.StringFlag{
		Name:     "http",
		Usage:    "Listen address of the HTTP status endpoint (disabled when empty)",
		Category: flags.APICategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    3,
		Category: flags.LoggingCategory,
	}
	logFileFlag = &cli.StringFlag{
		Name:     "log.file",
		Usage:    "Write logs to a rotated file as well as to the terminal",
		Category: flags.LoggingCategory,
	}
)

var app = flags.NewApp("the hnslite command line interface")

func init() {
	app.Name = clientIdentifier
	app.Action = hnslite
	app.Flags = flags.Merge(
		[]cli.Flag{configFileFlag, dataDirFlag, mainnetFlag, testnetFlag, regtestFlag, headersFileFlag},
		[]cli.Flag{httpAddrFlag},
		[]cli.Flag{verbosityFlag, logFileFlag},
	)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// hnslite brings up the chain and blocks until the process is interrupted.
func hnslite(ctx *cli.Context) error {
	cfg := loadBaseConfig(ctx)
	if err := setupLogging(&cfg.Node); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Node.DataDir, 0700); err != nil {
		return err
	}
	// Hold an exclusive lock for the lifetime of the process so two
	// instances never share a datadir.
	lock := flock.New(filepath.Join(cfg.Node.DataDir, "LOCK"))
	locked, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !locked {
		return fmt.Errorf("datadir %s is in use by another instance", cfg.Node.DataDir)
	}
	defer lock.Unlock()

	chainConfig, err := cfg.Node.chainConfig()
	if err != nil {
		return err
	}
	for _, line := range splitBanner(chainConfig.Description()) {
		log.Info(line)
	}

	td := timedata.NewMedianTime()
	chain, err := core.NewHeaderChain(chainConfig, td)
	if err != nil {
		return err
	}

	if path := cfg.Node.HeadersFile; path != "" {
		if err := importHeaders(chain, path); err != nil {
			return err
		}
	}
	if addr := cfg.Node.HTTPAddr; addr != "" {
		srv, err := startStatusServer(chain, addr)
		if err != nil {
			return err
		}
		defer srv.Close()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("Shutting down", "height", chain.Height(), "synced", chain.Synced())
	return nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hnslite")
}
