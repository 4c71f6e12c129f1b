package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/carelink/hospital-system/internal/client/cli"
	"github.com/carelink/hospital-system/pkg/client"
)

const defaultServer = "http://localhost:5000"

func main() {
	server := flag.String("server", envOr("WARDCTL_SERVER", defaultServer), "base URL of the hospital API")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() > 1 {
		usage()
		os.Exit(2)
	}

	app := cli.NewApp(client.New(*server))

	// No subcommand starts an interactive session, so a login survives
	// long enough to browse patients.
	var err error
	if flag.NArg() == 0 {
		err = app.Session()
	} else {
		err = app.Run(flag.Arg(0))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "wardctl: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: wardctl [-server URL] [command]

With no command, wardctl starts an interactive session.

Commands:
  register   create an account
  login      authenticate and store a session token
  patients   list patients (requires login)
  admit      create a patient record (requires login)
`)
	flag.PrintDefaults()
}
