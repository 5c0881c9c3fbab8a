package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/land-registry-session/pkg/app"
	"github.com/chainsafe/land-registry-session/pkg/app/devwallet"
	"github.com/chainsafe/land-registry-session/pkg/config"
)

var (
	configPath = flag.String("config", "devwallet.yaml", "Path to dev wallet configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadDevWallet(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = devwallet.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Dev wallet exited with error: %v\n", err)
		os.Exit(1)
	}
}
