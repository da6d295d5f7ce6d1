// Package listing renders the static index.html page for one directory.
package listing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/russross/blackfriday/v2"
	"go.uber.org/zap"

	"indexgen/internal/logging"
	"indexgen/internal/walker"
)

// IndexFile is the name of the generated page in every directory.
const IndexFile = "index.html"

//go:embed templates/listing.html
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "templates/listing.html"))

// Entry is one line of a listing.
type Entry struct {
	Name string
	Href string
	Icon string
	Size string
}

// PageData is the data passed to the listing template.
type PageData struct {
	Title   string
	Readme  template.HTML
	Subdirs []Entry
	Files   []Entry
}

// Options control what a Renderer includes.
type Options struct {
	// Filter is a glob; when set only matching files are listed.
	// Subdirectories are never filtered.
	Filter string
	// Readme renders a README.md found in the directory above the entries.
	Readme bool
}

// Renderer turns walked directories into HTML listings.
type Renderer struct {
	opts Options
	log  *zap.Logger
}

// New returns a Renderer. A nil logger uses the global one.
func New(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = logging.L()
	}
	return &Renderer{opts: opts, log: log}
}

// Render builds the listing for d. Files whose size cannot be read are logged
// and left out.
func (r *Renderer) Render(d walker.Directory) (string, error) {
	data, err := r.pageData(d)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render listing for %s: %w", d.Path, err)
	}
	return buf.String(), nil
}

func (r *Renderer) pageData(d walker.Directory) (*PageData, error) {
	data := &PageData{
		Title: filepath.Base(d.Path),
	}

	for _, name := range sorted(d.Subdirs) {
		data.Subdirs = append(data.Subdirs, Entry{
			Name: name,
			Href: "./" + url.PathEscape(name) + "/" + IndexFile,
			Icon: dirIcon,
		})
	}

	for _, name := range sorted(d.Files) {
		if IsIndexFile(name) {
			continue
		}
		ok, err := r.matches(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		info, err := os.Stat(filepath.Join(d.Path, name))
		if err != nil {
			r.log.Warn("cannot read file size, omitting entry",
				logging.File(filepath.Join(d.Path, name)), logging.Err(err))
			continue
		}
		data.Files = append(data.Files, Entry{
			Name: name,
			Href: "./" + url.PathEscape(name),
			Icon: iconFor(name),
			Size: PrettySize(info.Size()),
		})
	}

	if r.opts.Readme {
		data.Readme = r.readme(d)
	}
	return data, nil
}

func (r *Renderer) matches(name string) (bool, error) {
	if r.opts.Filter == "" {
		return true, nil
	}
	ok, err := MatchGlob(r.opts.Filter, name)
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", r.opts.Filter, err)
	}
	return ok, nil
}

func (r *Renderer) readme(d walker.Directory) template.HTML {
	for _, name := range d.Files {
		if !strings.EqualFold(name, "README.md") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(d.Path, name))
		if err != nil {
			r.log.Warn("cannot read readme", logging.File(filepath.Join(d.Path, name)), logging.Err(err))
			return ""
		}
		return template.HTML(blackfriday.Run(content))
	}
	return ""
}

// IsIndexFile reports whether name is a generated index page, ignoring case
// and surrounding whitespace.
func IsIndexFile(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), IndexFile)
}

func sorted(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	slices.Sort(out)
	return out
}
