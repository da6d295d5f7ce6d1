package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"indexgen/internal/config"
	"indexgen/internal/generator"
	"indexgen/internal/logging"
)

const version = "1.0"

const examples = `  Index the current directory:
    indexgen -p hunter2

  Index a specific directory, listing only PDFs:
    indexgen /srv/files -p hunter2 -f "*.pdf"

  See what would be written without touching anything:
    indexgen /srv/files -p hunter2 --dryrun --verbose

  Custom footer and animated login page:
    indexgen /srv/files -p hunter2 -b "(c) ACME" -t animated

  Read defaults from a file (flags still win):
    indexgen -c indexgen.yaml`

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexgen [top_dir]",
		Short: "Generate static index.html listings for a directory tree",
		Long: `indexgen v` + version + ` - Static directory index generator

Writes an index.html listing into every directory under top_dir (default: the
current directory) so the tree can be browsed from a plain HTTP file server.
The top-level index is hidden behind a password prompt.

The password prompt is obfuscation only. The listing is base64 encoded in the
page and the password is checked against a weak 32-bit hash in the browser.
Do not rely on it to protect anything.`,
		Example: examples,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.BindFlags(cmd.Flags())
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flags, args)
		if err != nil {
			return usageError{err}
		}
		return run(cmd.Context(), cfg)
	}
	return cmd
}

// usageError is reported together with the usage text.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func run(ctx context.Context, cfg config.Config) error {
	if err := logging.Init(logging.Config{
		Level:      logging.LevelFor(cfg.Verbose),
		Format:     cfg.LogFormat,
		OutputPath: "stderr",
	}); err != nil {
		return fmt.Errorf("logging init: %w", err)
	}
	defer logging.Sync()

	log := logging.L()
	start := time.Now()
	log.Info("indexgen starting",
		logging.Dir(cfg.TopDir),
		zap.Bool("dryrun", cfg.DryRun),
		logging.String("filter", cfg.Filter),
		logging.String("theme", cfg.Theme))

	report, err := generator.New(cfg, log).Run(ctx)
	if err != nil {
		return err
	}

	log.Info("done",
		logging.Int("directories", report.Visited),
		logging.Int("pages", report.Written),
		logging.Int("skipped", report.Skipped),
		zap.String("size", humanize.IBytes(uint64(report.Bytes))),
		zap.Bool("dryrun", cfg.DryRun),
		zap.Duration("took", time.Since(start)))
	if report.Skipped > 0 {
		log.Warn("some directories were skipped", logging.Int("count", report.Skipped))
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprint(os.Stderr, cmd.UsageString())
			os.Exit(2)
		}
		os.Exit(1)
	}
}
