package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags reads -a (server address) and -w (timeout, whole seconds).
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("gophauth-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	addr := fs.String("a", cfg.ServerEndpointAddr, "server address")
	secs := fs.Int("w", int(cfg.RequestTimeout/time.Second), "request timeout, seconds")

	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-a", "-w"})); err != nil {
		panic(err)
	}

	cfg.ServerEndpointAddr = *addr
	cfg.RequestTimeout = time.Duration(*secs) * time.Second
}
