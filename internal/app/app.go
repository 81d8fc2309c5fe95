// Package app dispatches a single trainlist invocation: it loads the
// collection, runs exactly one command against it and persists the result
// when the command changed it.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/danpilch/trainlist/internal/display"
	"github.com/danpilch/trainlist/internal/train"
)

// ErrInvalidInput marks answers to the interactive prompts that cannot be
// used. It is fatal; the prompt is never repeated.
var ErrInvalidInput = errors.New("invalid input")

// Store loads and saves the whole collection.
type Store interface {
	Load() (train.Collection, error)
	Save(c train.Collection) error
}

// Notifier is told about every train that was added and saved.
type Notifier interface {
	TrainAdded(r train.Record) error
}

// Options are the command flags of one invocation. When several are set
// the first of Add, List, Select wins.
type Options struct {
	Add    bool
	List   bool
	Select string
}

type Command int

const (
	CommandHelp Command = iota
	CommandAdd
	CommandList
	CommandSelect
)

func (c Command) String() string {
	switch c {
	case CommandAdd:
		return "add"
	case CommandList:
		return "list"
	case CommandSelect:
		return "select"
	default:
		return "help"
	}
}

// Command resolves the flags to the command that will run.
func (o Options) Command() Command {
	switch {
	case o.Add:
		return CommandAdd
	case o.List:
		return CommandList
	case o.Select != "":
		return CommandSelect
	default:
		return CommandHelp
	}
}

type App struct {
	store    Store
	printer  *display.Printer
	input    *bufio.Reader
	prompts  io.Writer
	notifier Notifier
	logger   *logrus.Logger
}

// New builds an App. Prompts are written to prompts and answered from in.
func New(store Store, printer *display.Printer, in io.Reader, prompts io.Writer, logger *logrus.Logger) *App {
	return &App{
		store:   store,
		printer: printer,
		input:   bufio.NewReader(in),
		prompts: prompts,
		logger:  logger,
	}
}

// WithNotifier enables add notifications.
func (a *App) WithNotifier(n Notifier) *App {
	a.notifier = n
	return a
}

func (a *App) Run(opts Options) error {
	cmd := opts.Command()
	a.logger.WithField("command", cmd.String()).Debug("dispatching")

	switch cmd {
	case CommandAdd:
		return a.add()
	case CommandList:
		return a.list()
	case CommandSelect:
		return a.selectDestination(opts.Select)
	default:
		return a.printer.Help()
	}
}

func (a *App) add() error {
	trains, err := a.store.Load()
	if err != nil {
		return err
	}

	r, err := a.promptRecord()
	if err != nil {
		return err
	}

	trains = train.Add(trains, r.Num, r.Destination, r.StartTime)
	if err := a.store.Save(trains); err != nil {
		return fmt.Errorf("saving trains: %w", err)
	}

	a.logger.WithFields(logrus.Fields{
		"num":         r.Num,
		"destination": r.Destination,
		"start_time":  r.StartTime,
		"total":       len(trains),
	}).Info("train added")

	if a.notifier != nil {
		if err := a.notifier.TrainAdded(r); err != nil {
			a.logger.WithField("error", err).Warn("failed to send add notification")
		}
	}

	return nil
}

func (a *App) list() error {
	trains, err := a.store.Load()
	if err != nil {
		return err
	}
	return a.printer.Table(trains)
}

func (a *App) selectDestination(destination string) error {
	trains, err := a.store.Load()
	if err != nil {
		return err
	}

	matches := train.FilterByDestination(trains, destination)
	a.logger.WithFields(logrus.Fields{
		"destination": destination,
		"matches":     len(matches),
	}).Debug("selected trains")

	return a.printer.Matches(matches)
}
