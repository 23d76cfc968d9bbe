// Command docgen manages document templates and renders documents from the
// command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/diewo77/go-hebergement/internal/config"
	"github.com/diewo77/go-hebergement/internal/db"
	"github.com/diewo77/go-hebergement/internal/logging"
	"github.com/diewo77/go-hebergement/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is the state shared by subcommands, opened lazily.
type env struct {
	cfg      *config.Config
	logLevel string
	logger   zerolog.Logger
	conn     *gorm.DB
	stack    *services.Stack
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:          "docgen",
		Short:        "Manage templates and generate accommodation documents",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			e.cfg = config.Load()
			level := e.logLevel
			if level == "" {
				level = e.cfg.App.LogLevel
			}
			e.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level (default: LOG_LEVEL or info)")

	root.AddCommand(newTemplatesCmd(e))
	root.AddCommand(newRenderCmd(e))
	root.AddCommand(newCheckCmd(e))
	root.AddCommand(newSessionCmd(e))
	return root
}

// open connects to the database and builds the document services. The
// sqlite schema is created on the fly.
func (e *env) open(ctx context.Context) (*services.Stack, error) {
	if e.stack != nil {
		return e.stack, nil
	}
	conn, err := db.Open(e.cfg.Database, logging.Component(e.logger, "db"))
	if err != nil {
		return nil, err
	}
	if e.cfg.Database.Driver == config.DriverSQLite {
		if err := db.Migrate(conn); err != nil {
			return nil, err
		}
		if err := db.Seed(conn); err != nil {
			return nil, err
		}
		if e.cfg.App.Seed {
			if err := db.SeedDemo(conn); err != nil {
				return nil, err
			}
		}
	}
	stack, err := services.Wire(ctx, e.cfg.Documents, conn, e.logger)
	if err != nil {
		return nil, err
	}
	e.conn, e.stack = conn, stack
	return stack, nil
}

const tablePadding = 2

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}
