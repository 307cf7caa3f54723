package server

import (
	"context"
	"flag"
	"net/http"
	"path/filepath"
	"time"

	"github.com/iov-one/nftsale/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagHTTP    = "http"
	flagDebug   = "debug"
	flagDataDir = "data"
	flagLevel   = "log_level"
)

// parseFlags overwrites the configuration with the values given on the
// command line.
func parseFlags(conf Config, args []string) (Config, error) {
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&conf.Bind, flagBind, conf.Bind, "address server listens on")
	fs.StringVar(&conf.HTTP, flagHTTP, conf.HTTP, "address of the query API, empty to disable")
	fs.StringVar(&conf.DataDir, flagDataDir, conf.DataDir, "application state directory, empty for memory")
	fs.BoolVar(&conf.Debug, flagDebug, conf.Debug, "call stack returned on error")
	fs.StringVar(&conf.LogLevel, flagLevel, conf.LogLevel, "debug, info, error or none")
	if err := fs.Parse(args); err != nil {
		return conf, errors.Wrap(errors.ErrInput, err.Error())
	}
	return conf, conf.Validate()
}

// AppGenerator lets us lazily initialize app, using the data directory
// and logger potentially initialized with other flags
type AppGenerator func(dataDir string, logger log.Logger, debug bool) (abci.Application, error)

// APIGenerator returns the HTTP handler serving queries of given app.
type APIGenerator func(app abci.Application, logger log.Logger) http.Handler

// StartCmd initializes the application and serves it over ABCI until the
// process receives a termination signal.
func StartCmd(gen AppGenerator, api APIGenerator, logger log.Logger, home string, conf Config, args []string) error {
	conf, err := parseFlags(conf, args)
	if err != nil {
		return err
	}
	logger = FilterLogger(logger, conf.LogLevel)

	dataDir := conf.DataDir
	if dataDir != "" && !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(home, dataDir)
	}
	app, err := gen(dataDir, logger, conf.Debug)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", conf.Bind)
	svr, err := server.NewServer(conf.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInternal, "create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrInternal, "start abci server: %s", err)
	}

	var httpSrv *http.Server
	if conf.HTTP != "" && api != nil {
		httpSrv = &http.Server{
			Addr:    conf.HTTP,
			Handler: api(app, logger.With("module", "api")),
		}
		go func() {
			logger.Info("Starting query API", "http", conf.HTTP)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("query API failed", "err", err)
			}
		}()
	}

	cmn.TrapSignal(logger, func() {
		if httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(ctx)
		}
		svr.Stop()
	})

	// The signal handler exits the process.
	select {}
}

// FilterLogger limits the logger output to given level.
func FilterLogger(logger log.Logger, level string) log.Logger {
	switch level {
	case "debug":
		return log.NewFilter(logger, log.AllowDebug())
	case "error":
		return log.NewFilter(logger, log.AllowError())
	case "none":
		return log.NewFilter(logger, log.AllowNone())
	default:
		return log.NewFilter(logger, log.AllowInfo())
	}
}
