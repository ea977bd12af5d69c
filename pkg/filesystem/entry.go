package filesystem

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
	"github.com/arthur-debert/iconrules/pkg/logging"
	"github.com/arthur-debert/iconrules/pkg/types"
	"github.com/spf13/afero"
)

// Entry is a filesystem entry with its facts resolved
type Entry struct {
	path  string
	name  string
	dir   bool
	mode  fs.FileMode
	facts map[string]bool
}

var _ types.Entry = (*Entry)(nil)

// Name returns the last element of the path
func (e *Entry) Name() string { return e.name }

// IsDir reports whether the entry, or the target of a link, is a directory
func (e *Entry) IsDir() bool { return e.dir }

// Path returns the path the entry was created from, slash separated
func (e *Entry) Path() string { return e.path }

// Mode returns the mode of the entry, or of the link target when it resolves
func (e *Entry) Mode() fs.FileMode { return e.mode }

// Has looks up a fact
func (e *Entry) Has(name string) (bool, bool) {
	v, ok := e.facts[name]
	return v, ok
}

// Facts returns the known facts, sorted by name
func (e *Entry) Facts() []string {
	names := make([]string, 0, len(e.facts))
	for n, v := range e.facts {
		if v {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Stat builds an Entry for name. The entry path is made absolute so
// full-path glob rules see the same path whatever the working directory.
// A missing path is an error; any other failure to read metadata yields a
// dummy entry.
func Stat(fsys afero.Fs, name string) (*Entry, error) {
	logger := logging.GetLogger("filesystem")

	abs, err := filepath.Abs(name)
	if err != nil {
		abs = filepath.Clean(name)
	}
	clean := filepath.ToSlash(abs)
	e := &Entry{
		path: clean,
		name: path.Base(clean),
	}

	info, isLink, err := lstat(fsys, name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrEntryStat, "cannot stat %s", name).
				WithDetail("path", name)
		}
		logger.Debug().Err(err).Str("path", name).Msg("Unreadable entry, using dummy")
		e.facts = map[string]bool{
			types.FactHidden: isHidden(e.name),
			types.FactDummy:  true,
		}
		return e, nil
	}

	orphan := false
	if isLink {
		target, terr := fsys.Stat(name)
		if terr != nil {
			orphan = true
		} else {
			info = target
		}
	}

	e.fill(info, isLink, orphan)
	return e, nil
}

// ReadDir returns entries for the children of dir, sorted by name
func ReadDir(fsys afero.Fs, dir string) ([]*Entry, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrEntryStat, "cannot read directory %s", dir).
			WithDetail("path", dir)
	}

	out := make([]*Entry, 0, len(infos))
	for _, info := range infos {
		e, err := Stat(fsys, filepath.Join(dir, info.Name()))
		if err != nil {
			// removed between listing and stat
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func lstat(fsys afero.Fs, name string) (fs.FileInfo, bool, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		if err != nil {
			return nil, false, err
		}
		return info, info.Mode()&fs.ModeSymlink != 0, nil
	}
	info, err := fsys.Stat(name)
	return info, false, err
}

func (e *Entry) fill(info fs.FileInfo, link, orphan bool) {
	m := info.Mode()
	e.mode = m
	e.dir = m.IsDir()

	e.facts = map[string]bool{
		types.FactHidden: isHidden(e.name),
		types.FactLink:   link,
		types.FactOrphan: orphan,
		types.FactDummy:  false,
		types.FactBlock:  m&os.ModeDevice != 0 && m&os.ModeCharDevice == 0,
		types.FactChar:   m&os.ModeCharDevice != 0,
		types.FactFifo:   m&os.ModeNamedPipe != 0,
		types.FactSock:   m&os.ModeSocket != 0,
		types.FactExec:   !e.dir && !orphan && m.Perm()&0o111 != 0,
		types.FactSticky: m&os.ModeSticky != 0,
	}
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
