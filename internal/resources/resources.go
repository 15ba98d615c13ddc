// Package resources resolves virtual asset paths against an ordered list of
// resource directories.
//
// A virtual path is slash-separated and rooted at "/", for example
// "/dragon1.png". Directories are searched in the order they were added and
// the first match wins.
package resources

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gogpu/imageview"
)

// EnvResourceDir names the environment variable that overrides the default
// resource directory.
const EnvResourceDir = "IMAGEVIEW_RESOURCE_DIR"

// ErrInvalidPath is returned for paths that escape the resource root.
var ErrInvalidPath = errors.New("resources: invalid path")

// FS is a read-only union of resource directories.
type FS struct {
	roots []root
}

type root struct {
	name string
	fsys fs.FS
}

// New returns an FS searching dirs in order.
func New(dirs ...string) *FS {
	f := &FS{}
	for _, d := range dirs {
		f.AddDir(d)
	}
	return f
}

// DefaultDirs returns the directories searched when none are configured:
// $IMAGEVIEW_RESOURCE_DIR/resources if set, then ./resources.
func DefaultDirs() []string {
	var dirs []string
	if base := os.Getenv(EnvResourceDir); base != "" {
		dirs = append(dirs, filepath.Join(base, "resources"))
	}
	return append(dirs, "resources")
}

// AddDir appends a directory to the search list.
func (f *FS) AddDir(dir string) {
	f.roots = append(f.roots, root{name: dir, fsys: os.DirFS(dir)})
}

// AddFS appends an arbitrary file system, such as an embed.FS, to the
// search list.
func (f *FS) AddFS(name string, fsys fs.FS) {
	f.roots = append(f.roots, root{name: name, fsys: fsys})
}

// Roots returns the names of the searched roots in order.
func (f *FS) Roots() []string {
	names := make([]string, len(f.roots))
	for i, r := range f.roots {
		names[i] = r.name
	}
	return names
}

// Open opens the first file matching the virtual path.
func (f *FS) Open(vpath string) (fs.File, error) {
	name, err := clean(vpath)
	if err != nil {
		return nil, err
	}
	for _, r := range f.roots {
		file, err := r.fsys.Open(name)
		if err == nil {
			return file, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("resources: open %s in %s: %w", vpath, r.name, err)
		}
	}
	return nil, &fs.PathError{Op: "open", Path: vpath, Err: fs.ErrNotExist}
}

// ReadFile reads the first file matching the virtual path.
func (f *FS) ReadFile(vpath string) ([]byte, error) {
	file, err := f.Open(vpath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: vpath, Err: errors.New("is a directory")}
	}
	return io.ReadAll(file)
}

// Load reads a virtual path and classifies failures as
// *imageview.ResourceLoadError.
func (f *FS) Load(vpath string) ([]byte, error) {
	data, err := f.ReadFile(vpath)
	if err != nil {
		kind := imageview.Decode
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrInvalidPath) {
			kind = imageview.NotFound
		}
		return nil, &imageview.ResourceLoadError{Kind: kind, Path: vpath, Err: err}
	}
	return data, nil
}

// Entry is one file visible through the FS.
type Entry struct {
	Path string // virtual path
	Root string // directory that provides it
	Size int64
}

// List walks every root and returns the visible files sorted by path.
// Files shadowed by an earlier root are omitted. Missing roots are skipped.
func (f *FS) List() ([]Entry, error) {
	seen := make(map[string]bool)
	var entries []Entry
	for _, r := range f.roots {
		err := fs.WalkDir(r.fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if p == "." && errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			vpath := "/" + p
			if seen[vpath] {
				return nil
			}
			seen[vpath] = true
			info, err := d.Info()
			if err != nil {
				return err
			}
			entries = append(entries, Entry{Path: vpath, Root: r.name, Size: info.Size()})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("resources: list %s: %w", r.name, err)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// LogContents writes the search roots and visible files at debug level.
func (f *FS) LogContents() {
	log := imageview.Logger()
	log.Debug("resources: search path", "roots", f.Roots())
	entries, err := f.List()
	if err != nil {
		log.Warn("resources: listing failed", "err", err)
		return
	}
	for _, e := range entries {
		log.Debug("resources: file", "path", e.Path, "root", e.Root, "size", e.Size)
	}
}

// clean converts a virtual path to an fs.FS name.
func clean(vpath string) (string, error) {
	if !strings.HasPrefix(vpath, "/") {
		return "", fmt.Errorf("%w: %q is not rooted at /", ErrInvalidPath, vpath)
	}
	name := strings.TrimPrefix(path.Clean(vpath), "/")
	if name == "" {
		name = "."
	}
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, vpath)
	}
	return name, nil
}
