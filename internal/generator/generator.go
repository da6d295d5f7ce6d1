// Package generator walks a tree and writes an index.html into every
// writable directory. The root page is wrapped in the password prompt.
package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"indexgen/internal/config"
	"indexgen/internal/listing"
	"indexgen/internal/logging"
	"indexgen/internal/walker"
	"indexgen/internal/wrap"
)

// ErrNotWritable marks a directory skipped for lack of write permission.
var ErrNotWritable = errors.New("directory is not writable")

// writable is replaced in tests.
var writable = canWrite

// Report summarises a run.
type Report struct {
	Visited int   // directories seen by the walk
	Written int   // index pages written, or that would be in a dry run
	Skipped int   // directories left without a new index page
	Bytes   int64 // total size of the pages in Written

	// Errs holds one entry per skipped directory or failed write.
	Errs *multierror.Error
}

// Err returns the accumulated per-directory errors, or nil.
func (r *Report) Err() error {
	return r.Errs.ErrorOrNil()
}

func (r *Report) skip(err error) {
	r.Skipped++
	r.Errs = multierror.Append(r.Errs, err)
}

// Generator runs one pass over a tree.
type Generator struct {
	cfg      config.Config
	renderer *listing.Renderer
	log      *zap.Logger
}

// New returns a Generator for cfg. A nil logger uses the global one.
func New(cfg config.Config, log *zap.Logger) *Generator {
	if log == nil {
		log = logging.L()
	}
	return &Generator{
		cfg: cfg,
		renderer: listing.New(listing.Options{
			Filter: cfg.Filter,
			Readme: cfg.Readme,
		}, log),
		log: log,
	}
}

// Run walks the tree and writes the index pages. Failures for a single
// directory are logged, recorded in the report, and do not stop the walk.
// Run returns an error only if the root itself cannot be read or ctx is done.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	for dir, err := range walker.Walk(g.cfg.TopDir) {
		if err != nil {
			if dir.IsRoot() {
				return report, fmt.Errorf("read top directory: %w", err)
			}
			report.Visited++
			g.log.Warn("cannot read directory, skipping", logging.Dir(dir.Path), logging.Err(err))
			report.skip(fmt.Errorf("%s: %w", dir.Path, err))
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Visited++
		g.process(dir, report)
	}
	return report, nil
}

func (g *Generator) process(dir walker.Directory, report *Report) {
	g.log.Info("processing directory", logging.Dir(dir.Path))

	if !writable(dir.Path) {
		g.log.Warn("directory is not writable, skipping", logging.Dir(dir.Path))
		report.skip(fmt.Errorf("%s: %w", dir.Path, ErrNotWritable))
		return
	}

	page, err := g.page(dir)
	if err != nil {
		g.log.Error("cannot render index", logging.Dir(dir.Path), logging.Err(err))
		report.skip(err)
		return
	}

	target := filepath.Join(dir.Path, listing.IndexFile)
	fields := []zap.Field{
		logging.File(target),
		zap.Bool("protected", dir.IsRoot()),
		logging.Int("bytes", len(page)),
	}

	if g.cfg.DryRun {
		g.log.Info("would write index", fields...)
	} else {
		if err := writeIndex(dir.Path, []byte(page)); err != nil {
			g.log.Warn("cannot create index", logging.File(target), logging.Err(err))
			report.skip(err)
			return
		}
		g.log.Info("wrote index", fields...)
	}
	report.Written++
	report.Bytes += int64(len(page))
}

// page renders the listing for dir, wrapped when dir is the root.
func (g *Generator) page(dir walker.Directory) (string, error) {
	content, err := g.renderer.Render(dir)
	if err != nil {
		return "", err
	}
	if !dir.IsRoot() {
		return content, nil
	}
	return wrap.Wrap(content, wrap.Options{
		Password: g.cfg.Password,
		Footer:   g.cfg.Footer,
		Theme:    g.cfg.Theme,
	})
}

// writeIndex replaces dir/index.html through a temp file and rename so a
// failed write never leaves a truncated page behind.
func writeIndex(dir string, content []byte) (err error) {
	target := filepath.Join(dir, listing.IndexFile)

	tmp, err := os.CreateTemp(dir, ".index-*.html")
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", target, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", target, err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename %s: %w", target, err)
	}
	return nil
}
