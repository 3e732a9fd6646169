package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/learning-journal/internal/adapters/clients"
	"github.com/jsamuelsen/learning-journal/internal/adapters/clients/acl"
	"github.com/jsamuelsen/learning-journal/internal/adapters/storage/jsonfile"
	"github.com/jsamuelsen/learning-journal/internal/app"
	"github.com/jsamuelsen/learning-journal/internal/console"
	"github.com/jsamuelsen/learning-journal/internal/platform/config"
	"github.com/jsamuelsen/learning-journal/internal/platform/logging"
	"github.com/jsamuelsen/learning-journal/internal/ports"
)

const journalServiceName = "journal-service"

// options are the persistent flags shared by every command.
type options struct {
	file     string
	server   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "journal",
		Short: "Add and list learning journal entries",
		Long: `journal manages the learning journal from the terminal.

Without a subcommand it shows an interactive menu. Entries are read from and
written to the local data file unless --server points at a running journal
service.

Examples:
  # Interactive menu
  journal

  # Add an entry to a specific file
  journal add --file ./backend/reflections.json

  # List entries from a running service
  journal list --server http://localhost:5000`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts, (*console.Console).Menu)
		},
	}

	root.PersistentFlags().StringVar(&opts.file, "file", "", "data file (default from storage.path)")
	root.PersistentFlags().StringVar(&opts.server, "server", "", "journal service URL; when set the data file is not used")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "diagnostic log level written to stderr")

	root.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Add a new entry interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts, (*console.Console).Add)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd, opts, (*console.Console).List)
		},
	})

	return root
}

func runConsole(cmd *cobra.Command, opts *options, action func(*console.Console, context.Context) error) error {
	cfg, err := config.Load(config.Profile())
	if err != nil {
		return reportErr(cmd, fmt.Errorf("loading config: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return reportErr(cmd, fmt.Errorf("invalid config: %w", err))
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   opts.logLevel,
		Format:  "pretty",
		Service: "journal",
		Version: Version,
	}, cmd.ErrOrStderr())

	journal, err := newJournal(cfg, opts, logger)
	if err != nil {
		return reportErr(cmd, err)
	}

	c := console.New(journal, cmd.InOrStdin(), cmd.OutOrStdout())

	if err := action(c, cmd.Context()); err != nil {
		return reportErr(cmd, err)
	}

	return nil
}

// newJournal picks the local file store or the remote service.
func newJournal(cfg *config.Config, opts *options, logger *slog.Logger) (ports.Journal, error) {
	if opts.server != "" {
		client, err := clients.New(&clients.Config{
			BaseURL:     opts.server,
			ServiceName: journalServiceName,
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating client: %w", err)
		}

		return acl.NewReflectionClient(acl.ReflectionClientConfig{
			Client:      client,
			ServiceName: journalServiceName,
			Logger:      logger,
		}), nil
	}

	path := opts.file
	if path == "" {
		path = cfg.Storage.Path
	}

	if path == "" {
		return nil, errors.New("no data file configured")
	}

	return app.NewReflectionService(app.ReflectionServiceConfig{
		Store:  jsonfile.New(path, logger),
		Logger: logger,
	}), nil
}

func reportErr(cmd *cobra.Command, err error) error {
	cmd.PrintErrln("error:", err)
	return err
}
