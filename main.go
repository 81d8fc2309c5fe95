package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/danpilch/trainlist/internal/app"
	"github.com/danpilch/trainlist/internal/config"
	"github.com/danpilch/trainlist/internal/display"
	"github.com/danpilch/trainlist/internal/notify"
	"github.com/danpilch/trainlist/internal/storage"
)

type CLI struct {
	Add    bool   `help:"Add a train."`
	List   bool   `help:"List all trains."`
	Select string `help:"Show trains going to the given destination." placeholder:"DESTINATION"`

	File     string `help:"Path to the trains data file (overrides config)." env:"TRAINLIST_FILE"`
	Config   string `help:"Path to config file" default:"${config_file}" type:"path"`
	LogLevel string `help:"Log level, ${default_log_level} unless set in config." env:"TRAINLIST_LOG_LEVEL"`
}

func main() {
	// Optional .env with Pushover credentials
	_ = godotenv.Load()

	// Logs go to stderr, stdout carries the tables
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, logger); err != nil {
		logger.WithField("error", err).Fatal("trainlist failed")
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, logger *logrus.Logger) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("trainlist"),
		kong.Description("Record and query train departures."),
		kong.Writers(stdout, stderr),
		kong.Vars{
			"config_file":       config.DefaultPath,
			"default_log_level": config.DefaultLogLevel,
		},
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cli.File != "" {
		cfg.DataFile = cli.File
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	store := storage.NewFile(cfg.DataFile, logger)
	printer := display.NewPrinter(stdout, stderr)
	trainApp := app.New(store, printer, stdin, stdout, logger)

	if cfg.Notify.Enabled {
		notifier, err := notify.FromEnv(logger)
		if err != nil {
			return err
		}
		trainApp.WithNotifier(notifier)
	}

	logger.WithFields(logrus.Fields{
		"data_file": cfg.DataFile,
		"notify":    cfg.Notify.Enabled,
	}).Debug("starting trainlist")

	return trainApp.Run(app.Options{
		Add:    cli.Add,
		List:   cli.List,
		Select: cli.Select,
	})
}
