// Package cli implements the wardctl terminal client: signup and login with
// the same guard rails the web client applies (strength gate, confirmation,
// local lockout), plus basic patient browsing.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/carelink/hospital-system/pkg/client"
)

// App wires the API client to terminal input/output.
type App struct {
	api    *client.Client
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(api *client.Client) *App {
	return &App{
		api:    api,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run dispatches a single subcommand.
func (a *App) Run(command string) error {
	switch command {
	case "register":
		return a.Register()
	case "login":
		return a.Login()
	case "patients":
		return a.ListPatients()
	case "admit":
		return a.AddPatient()
	default:
		return fmt.Errorf("unknown command %q (expected register, login, patients, or admit)", command)
	}
}

// Session runs the interactive loop. The bearer token lives in the API
// client, so login followed by patients works within one session.
func (a *App) Session() error {
	fmt.Fprintln(a.out, "wardctl (type 'help' for commands)")
	for {
		fmt.Fprint(a.out, "wardctl> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}

		switch cmd := strings.TrimSpace(line); cmd {
		case "":
		case "help":
			fmt.Fprintln(a.out, "Commands: register, login, patients, admit, exit")
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		case "register", "login", "patients", "admit":
			if err := a.Run(cmd); err != nil {
				fmt.Fprintf(a.out, "error: %v\n", err)
			}
		default:
			fmt.Fprintf(a.out, "unknown command %q (type 'help')\n", cmd)
		}
	}
}
