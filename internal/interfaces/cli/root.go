// Package cli is the command-line console over the entity screens.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/erp/ausyexpo/internal/application/insight"
	"github.com/erp/ausyexpo/internal/application/listing"
	"github.com/erp/ausyexpo/internal/application/screen"
	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/infrastructure/auth"
	"github.com/erp/ausyexpo/internal/infrastructure/config"
	"github.com/erp/ausyexpo/internal/infrastructure/logger"
)

// Version information (populated at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// skipBootstrap marks commands that run without configuration or a client.
const skipBootstrap = "skip-bootstrap"

// Settings are the global flags.
type Settings struct {
	ConfigFile string
	Output     string
	LogLevel   string
}

// App holds the dependencies commands run against.
type App struct {
	Registry *screen.Registry
	Insight  *insight.Service
	Tokens   *auth.FileStore
	Session  *auth.Session
	Seed     config.SeedConfig
	Logger   *zap.Logger
	// Shutdown flushes telemetry; may be nil.
	Shutdown func(context.Context) error
}

// Bootstrap builds the App once flags are parsed. Screens must report
// through notifier.
type Bootstrap func(ctx context.Context, s Settings, notifier listing.Notifier) (*App, error)

// Streams are the console's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type console struct {
	boot     Bootstrap
	streams  Streams
	settings Settings
	notes    *notifier
	app      *App
	out      *printer
}

// Run executes args and returns the process exit code.
func Run(ctx context.Context, boot Bootstrap, streams Streams, args []string) int {
	c := &console{boot: boot, streams: streams, notes: &notifier{w: streams.Err}}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	err := root.ExecuteContext(ctx)
	if c.app != nil && c.app.Shutdown != nil {
		if serr := c.app.Shutdown(context.WithoutCancel(ctx)); serr != nil && c.app.Logger != nil {
			c.app.Logger.Warn("telemetry shutdown failed", zap.Error(serr))
		}
	}
	if err == nil {
		return 0
	}
	if !c.notes.reported() {
		printError(streams.Err, err)
	}
	return 1
}

func (c *console) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "console",
		Short: "Garment-export management console",
		Long: `Manage branches, users, employees, departments, stock, supplies,
transportation, orders, agreements and commands against the backend API.

Every screen offers list, get, create, update, delete and fields, plus its
quick status actions.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.settings.ConfigFile, "config", "", "config file (default: config.toml in ., ./config or ~/.ausyexpo)")
	flags.StringVarP(&c.settings.Output, "output", "o", FormatTable, "output format: table, json or yaml")
	flags.StringVar(&c.settings.LogLevel, "log-level", "", "log level override: debug, info, warn or error")

	// Command metadata only; the live screens come from the bootstrapped App.
	meta := screen.NewRegistry(screen.Env{})
	for _, s := range meta.All() {
		root.AddCommand(c.screenCommand(s))
	}
	root.AddCommand(c.reportsCommand(), c.authCommand(), c.seedCommand(), c.versionCommand())
	return root
}

func (c *console) setup(cmd *cobra.Command, _ []string) error {
	c.settings.Output = strings.ToLower(c.settings.Output)
	if !slices.Contains(formats, c.settings.Output) {
		return fmt.Errorf("%w: --output must be one of %s", shared.ErrInvalidInput, strings.Join(formats, ", "))
	}
	c.out = &printer{w: c.streams.Out, format: c.settings.Output}
	if cmd.Annotations[skipBootstrap] != "" {
		return nil
	}
	app, err := c.boot(cmd.Context(), c.settings, c.notes)
	if err != nil {
		return err
	}
	c.app = app
	if app.Logger != nil {
		ctx := logger.WithCommand(cmd.Context(), cmd.CommandPath())
		cmd.SetContext(logger.WithContext(ctx, app.Logger))
	}
	return nil
}

func (c *console) screen(key string) (screen.Screen, error) {
	s, ok := c.app.Registry.Get(key)
	if !ok {
		return nil, fmt.Errorf("unknown screen %q", key)
	}
	return s, nil
}

func (c *console) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipBootstrap: "true"},
		RunE: func(*cobra.Command, []string) error {
			return c.out.value(map[string]string{
				"version":   Version,
				"buildTime": BuildTime,
				"gitCommit": GitCommit,
			})
		},
	}
}

// printError writes err for the user. Validation errors list every field.
func printError(w io.Writer, err error) {
	var verr *shared.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(w, "Error: please correct the following fields:")
		for _, f := range verr.Fields {
			fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
		}
		return
	}
	if msg := shared.RemoteMessage(err, ""); msg != "" {
		fmt.Fprintln(w, "Error: "+msg)
		return
	}
	fmt.Fprintln(w, "Error: "+err.Error())
}
