// Package walker enumerates a directory tree one directory at a time.
package walker

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// readDir is replaced in tests.
var readDir = os.ReadDir

// Directory is one directory visited by Walk.
type Directory struct {
	Path    string   // absolute path
	Depth   int      // 0 for the root
	Subdirs []string // immediate subdirectory names, sorted
	Files   []string // immediate file names, sorted
}

// IsRoot reports whether d is the directory the walk started from.
func (d Directory) IsRoot() bool {
	return d.Depth == 0
}

// Walk returns a depth-first, lexically ordered sequence of every directory
// under root, root included. A directory whose entries cannot be read is
// yielded with the error and not descended into. Symlinks to directories are
// reported as subdirectories but never followed.
//
// The sequence is single-pass; stopping the range loop stops the walk.
func Walk(root string) iter.Seq2[Directory, error] {
	return func(yield func(Directory, error) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			yield(Directory{Path: root}, fmt.Errorf("resolve path: %w", err))
			return
		}
		info, err := os.Stat(abs)
		if err != nil {
			yield(Directory{Path: abs}, err)
			return
		}
		if !info.IsDir() {
			yield(Directory{Path: abs}, fmt.Errorf("not a directory: %s", abs))
			return
		}
		walk(abs, 0, yield)
	}
}

func walk(dir string, depth int, yield func(Directory, error) bool) bool {
	d, descend, err := read(dir, depth)
	if err != nil {
		return yield(d, err)
	}
	if !yield(d, nil) {
		return false
	}
	for _, name := range descend {
		if !walk(filepath.Join(dir, name), depth+1, yield) {
			return false
		}
	}
	return true
}

// read lists dir. descend holds the subdirectories that are real directories
// and should be walked.
func read(dir string, depth int) (Directory, []string, error) {
	d := Directory{Path: dir, Depth: depth}

	// os.ReadDir returns entries sorted by name.
	entries, err := readDir(dir)
	if err != nil {
		return d, nil, err
	}

	var descend []string
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case entry.IsDir():
			d.Subdirs = append(d.Subdirs, name)
			descend = append(descend, name)
		case entry.Type()&fs.ModeSymlink != 0 && isDirLink(filepath.Join(dir, name)):
			d.Subdirs = append(d.Subdirs, name)
		default:
			d.Files = append(d.Files, name)
		}
	}
	return d, descend, nil
}

func isDirLink(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
