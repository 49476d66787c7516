package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/adapter"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/atotto/clipboard"
)

const usage = `usage: qrk-client [-server URL] [-token TOKEN] [-timeout D] <command> [flags]

commands:
  protect   encrypt a file or text into a QR code
  reveal    decrypt a scanned artifact
  shorten   issue a short link
  links     list your links
  link      show one of your links
  update    change title, description or tags of a link
  toggle    enable or disable a link
  delete    delete a link
  version   print the server version
  token     sign an owner token for a self-hosted server
`

type command func(ctx context.Context, args []string) error

type App struct {
	adapter adapter.ServerAdapter

	stdin  io.Reader
	stdout io.Writer

	copyToClipboard func(text string) error
	readFile        func(name string) ([]byte, error)
	writeFile       func(name string, data []byte, perm os.FileMode) error
	now             func() time.Time

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, stdin io.Reader, stdout io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter:         serverAdapter,
		stdin:           stdin,
		stdout:          stdout,
		copyToClipboard: clipboard.WriteAll,
		readFile:        os.ReadFile,
		writeFile:       os.WriteFile,
		now:             time.Now,
		logger:          logger,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.stdout, usage)
		return ErrNoCommand
	}

	commands := map[string]command{
		"protect": a.protect,
		"reveal":  a.reveal,
		"shorten": a.shorten,
		"links":   a.links,
		"link":    a.link,
		"update":  a.update,
		"toggle":  a.toggle,
		"delete":  a.delete,
		"version": a.version,
		"token":   a.token,
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		fmt.Fprint(a.stdout, usage)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprint(a.stdout, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")
	return cmd(ctx, args[1:])
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stdout)
	return fs
}

// readInput treats "-" as standard input.
func (a *App) readInput(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(a.stdin)
	}
	return a.readFile(name)
}
