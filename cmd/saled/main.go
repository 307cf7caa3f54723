package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/cmd/saled/api"
	saled "github.com/iov-one/nftsale/cmd/saled/app"
	"github.com/iov-one/nftsale/commands/server"
	"github.com/iov-one/nftsale/errors"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome   = "home"
	flagConfig = "config"
	varHome    *string
	varConfig  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".saled")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varConfig = flag.String(flagConfig, "", "YAML configuration file (default \"<home>/config/saled.yaml\")")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("saled")
	fmt.Println("          Escrowed asset sale node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server and the query API")
	fmt.Println("validate  Check that genesis files can be loaded")
	fmt.Println("keys      Derive a key from a hex seed: keys [path] [seed]")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.saled")
  -config string
        YAML configuration file (default "<home>/config/saled.yaml")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "sale")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(saled.GenInitOptions, logger, *varHome, rest)
	case "start":
		var conf server.Config
		if conf, err = loadConfig(); err == nil {
			err = server.StartCmd(saled.GenerateApp, api.New, logger, *varHome, conf, rest)
		}
	case "validate":
		err = server.ValidateGenesis(saled.Initializers(), rest)
	case "keys":
		err = keysCmd(rest)
	case "version":
		fmt.Println(weave.Version())
	default:
		err = errors.Wrapf(errors.ErrInput, "unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func loadConfig() (server.Config, error) {
	path := *varConfig
	if path == "" {
		path = filepath.Join(*varHome, "config", "saled.yaml")
	}
	return server.LoadConfig(path)
}

func keysCmd(args []string) error {
	var path, seed string
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	case 2:
		path, seed = args[0], args[1]
	default:
		return errors.Wrap(errors.ErrInput, "keys takes at most a path and a seed")
	}
	_, keys, err := saled.DeriveKey(path, seed)
	if err != nil {
		return err
	}
	fmt.Println(keys)
	return nil
}
