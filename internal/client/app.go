package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pswdapp/vaultcore/internal/config"
	"github.com/pswdapp/vaultcore/internal/logger"
	"github.com/pswdapp/vaultcore/internal/service"
	"github.com/pswdapp/vaultcore/internal/workers"
)

// App is the command-line client application. It owns the service layer,
// the background workers and the terminal streams used for prompting.
type App struct {
	services *service.Services
	workers  *workers.Workers
	cfg      config.Workers
	logger   *logger.Logger

	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the application over the already constructed services.
// The auto-lock job is registered with the configured idle interval and
// runs for the lifetime of every command.
func NewApp(services *service.Services, cfg config.Workers, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, fmt.Errorf("client: services are required")
	}
	if log == nil {
		log = logger.Nop()
	}

	ws := &workers.Workers{}
	ws.Add(services.AutoLock, cfg.AutoLockAfter)

	return &App{
		services: services,
		workers:  ws,
		cfg:      cfg,
		logger:   log,
		in:       os.Stdin,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run dispatches a single subcommand and blocks until it completes.
// The session is locked and all workers are stopped before Run returns,
// whatever the command outcome.
func (a *App) Run(args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return fmt.Errorf("no command given")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a.workers.StartAll(ctx)
	defer a.workers.StopAll()
	defer a.services.Session.Close()

	cmd, rest := args[0], args[1:]
	a.logger.Debug().Str("command", cmd).Msg("dispatching command")

	switch cmd {
	case "register":
		return a.cmdRegister(ctx, rest)
	case "add":
		return a.cmdAdd(ctx, rest)
	case "get":
		return a.cmdGet(ctx, rest)
	case "list":
		return a.cmdList(ctx)
	case "edit":
		return a.cmdEdit(ctx, rest)
	case "rm":
		return a.cmdRemove(ctx, rest)
	case "sync":
		return a.cmdSync(ctx)
	case "devices":
		return a.cmdDevices(ctx)
	case "approve":
		return a.cmdApprove(ctx, rest)
	case "enroll":
		return a.cmdEnroll(ctx, rest)
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		a.printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) printUsage() {
	fmt.Fprint(a.out, `vaultcore — zero-knowledge password manager client

Usage:
  vaultcore register -u <username> [-e <email>]   create an account on this device
  vaultcore add -t <title> -type <kind>           add an entry (password|note|card)
  vaultcore get [-t <title> | -id <id>] [-copy]   show an entry, -copy puts the secret on the clipboard
  vaultcore list                                  list entry titles without decrypting
  vaultcore edit -id <id> -t <title> -type <kind> replace an entry's payload
  vaultcore rm [-t <title> | -id <id>]            delete an entry
  vaultcore sync                                  pull the account's entries from the registry
  vaultcore devices                               list devices awaiting approval (master only)
  vaultcore approve -d <device-id>                approve a pending device (master only)
  vaultcore enroll -u <username>                  enroll this device as a secondary and wait for approval
`)
}

// unlock prompts for the vault password and establishes the session. On a
// secondary device the same prompt accepts the local passphrase; the key
// store decides which derivation applies.
func (a *App) unlock(ctx context.Context) error {
	if a.services.Session.Unlocked() {
		return nil
	}
	password, err := a.promptSecret("Vault password: ")
	if err != nil {
		return err
	}
	return a.services.Session.Unlock(ctx, password)
}

// connect unlocks the session and authenticates to the registry. Commands
// that only read the local cache call unlock directly instead.
func (a *App) connect(ctx context.Context) error {
	if err := a.unlock(ctx); err != nil {
		return err
	}
	return a.services.Auth.Login(ctx)
}
