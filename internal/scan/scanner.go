// Package scan lists library directories into catalog entries.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/efermi/coolreader/internal/catalog"
	"github.com/efermi/coolreader/internal/format"
	"github.com/efermi/coolreader/internal/logging"
	"github.com/efermi/coolreader/internal/probe"
	"go.uber.org/zap"
)

// ErrNotDirectory is returned when Scan is given something it cannot list.
var ErrNotDirectory = errors.New("not a directory")

// ArchiveLister is the archive access the scanner needs.
type ArchiveLister interface {
	catalog.ArchiveIndex
	IsArchive(name string) bool
}

// Scanner turns directory listings into catalog entries.
type Scanner struct {
	FS       *probe.FS
	Archives ArchiveLister
	Formats  catalog.FormatClassifier

	// MaxDepth bounds recursion below the scanned directory. Zero lists only
	// the directory itself.
	MaxDepth int
	// Checksums computes CRC-32 fingerprints for plain files.
	Checksums bool
	// Hidden includes dot-files and dot-directories.
	Hidden bool

	Logger *zap.Logger
}

type Option func(*Scanner)

func WithMaxDepth(n int) Option       { return func(s *Scanner) { s.MaxDepth = n } }
func WithChecksums(on bool) Option    { return func(s *Scanner) { s.Checksums = on } }
func WithHidden(on bool) Option       { return func(s *Scanner) { s.Hidden = on } }
func WithLogger(l *zap.Logger) Option { return func(s *Scanner) { s.Logger = l } }

func WithFormats(c catalog.FormatClassifier) Option {
	return func(s *Scanner) { s.Formats = c }
}

// New returns a scanner over fsys. archives may be nil, in which case
// archives are skipped like any unknown file.
func New(fsys *probe.FS, archives ArchiveLister, opts ...Option) *Scanner {
	s := &Scanner{FS: fsys, Archives: archives, Formats: format.Classifier{}}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Scanner) log() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logging.Named("scan")
}

// Scan replaces dir's children with a fresh listing and recurses into
// subdirectories up to MaxDepth. Archive containers are re-read from the
// archive index.
func (s *Scanner) Scan(ctx context.Context, dir *catalog.Entry) error {
	return s.scan(ctx, dir, 0)
}

func (s *Scanner) scan(ctx context.Context, dir *catalog.Entry, depth int) error {
	items, err := s.list(ctx, dir)
	if err != nil {
		return err
	}
	dir.SetItems(items)
	dir.IsScanned = true
	s.log().Debug("scanned",
		zap.String("dir", dir.Pathname),
		zap.Int("dirs", dir.DirCount()),
		zap.Int("files", dir.FileCount()))

	if depth >= s.MaxDepth {
		return nil
	}
	for _, sub := range dir.Dirs() {
		if sub.IsArchive {
			continue // members were listed with the container
		}
		if err := s.scan(ctx, sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Rescan lists dir again and merges the result into the existing children.
// Unchanged books keep their id, reading state, rating and metadata;
// changed books are replaced; vanished entries are removed. Listed
// subdirectories left empty are pruned bottom-up.
func (s *Scanner) Rescan(ctx context.Context, dir *catalog.Entry) error {
	return s.rescan(ctx, dir, 0)
}

func (s *Scanner) rescan(ctx context.Context, dir *catalog.Entry, depth int) error {
	if !dir.IsListed {
		return s.scan(ctx, dir, depth)
	}
	fresh, err := s.list(ctx, dir)
	if err != nil {
		return err
	}

	for _, old := range append(dir.Dirs(), dir.Files()...) {
		if !containsIdentity(fresh, old) && !old.IsSpecialDir() {
			dir.RemoveChild(old)
		}
	}

	var added, updated, replaced int
	for _, f := range fresh {
		idx := dir.ItemIndex(f)
		if idx < 0 {
			dir.AddItems([]*catalog.Entry{f})
			added++
			continue
		}
		old := dir.Item(idx)
		if f.IsDirectory {
			flags, id := old.Flags, old.ID
			old.Assign(f)
			old.Flags, old.ID = flags, id
			if f.IsArchive {
				// containers come back fully listed; merge their members too
				if err := s.mergeMembers(old, f); err != nil {
					return err
				}
			}
			continue
		}
		merged := f.Copy()
		inheritMetadata(merged, old)
		if catalog.FingerprintEqual(old, merged) {
			dir.UpdateItem(merged)
			updated++
		} else {
			dir.ReplaceFile(f)
			replaced++
		}
	}
	dir.IsListed = true
	dir.IsScanned = true
	s.log().Debug("rescanned",
		zap.String("dir", dir.Pathname),
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.Int("replaced", replaced))

	if depth < s.MaxDepth {
		for _, sub := range dir.Dirs() {
			if sub.IsArchive || sub.IsSpecialDir() {
				continue
			}
			if err := s.rescan(ctx, sub, depth+1); err != nil {
				return err
			}
		}
	}
	// after recursion, so directories emptied below are pruned too
	dir.RemoveEmptyDirs()
	return nil
}

func (s *Scanner) mergeMembers(container, fresh *catalog.Entry) error {
	for _, old := range container.Files() {
		if !containsIdentity(fresh.Files(), old) {
			container.RemoveChild(old)
		}
	}
	for _, f := range fresh.Files() {
		idx := container.FileIndex(f)
		if idx < 0 {
			container.AddItems([]*catalog.Entry{f.Copy()})
			continue
		}
		merged := f.Copy()
		inheritMetadata(merged, container.File(idx))
		if catalog.FingerprintEqual(container.File(idx), merged) {
			container.UpdateItem(merged)
		} else {
			container.SetFile(idx, f.Copy())
		}
	}
	container.IsListed = true
	return nil
}

// inheritMetadata copies what a directory listing cannot know.
func inheritMetadata(dst, src *catalog.Entry) {
	dst.ID = src.ID
	dst.Title = src.Title
	dst.Authors = src.Authors
	dst.Series = src.Series
	dst.SeriesNumber = src.SeriesNumber
	dst.Genres = src.Genres
	dst.Language = src.Language
	dst.Description = src.Description
	dst.Flags = src.Flags
	dst.LastAccessTime = src.LastAccessTime
	dst.DOMVersion = src.DOMVersion
	dst.BlockRenderingFlags = src.BlockRenderingFlags
	if dst.CRC32 == 0 {
		dst.CRC32 = src.CRC32
	}
}

func containsIdentity(list []*catalog.Entry, e *catalog.Entry) bool {
	for _, c := range list {
		if c.PathNameEquals(e) {
			return true
		}
	}
	return false
}

// list builds the children of dir without attaching them.
func (s *Scanner) list(ctx context.Context, dir *catalog.Entry) ([]*catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case dir.IsArchive && dir.IsDirectory:
		return s.members(dir.Pathname, dir.ArcSize)
	case !dir.IsDirectory || dir.IsSpecialDir():
		return nil, fmt.Errorf("scan %s: %w", dir.Pathname, ErrNotDirectory)
	}

	infos, err := s.FS.List(dir.Pathname)
	if err != nil {
		if !s.FS.IsDir(dir.Pathname) {
			return nil, fmt.Errorf("scan %s: %w", dir.Pathname, ErrNotDirectory)
		}
		return nil, fmt.Errorf("scan %s: %w", dir.Pathname, err)
	}

	items := make([]*catalog.Entry, 0, len(infos))
	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := info.Name()
		if !s.Hidden && strings.HasPrefix(name, ".") {
			continue
		}
		p := filepath.Join(dir.Pathname, name)
		switch {
		case info.IsDir():
			items = append(items, dirEntry(p, info))
		case s.Archives != nil && s.Archives.IsArchive(name):
			if e := s.archiveEntry(p, info); e != nil {
				items = append(items, e)
			}
		default:
			if e := s.fileEntry(p, info); e != nil {
				items = append(items, e)
			}
		}
	}
	return items, nil
}

func dirEntry(p string, info os.FileInfo) *catalog.Entry {
	e := catalog.NewEntry()
	e.IsDirectory = true
	e.Pathname = p
	e.FileName = filepath.Base(p)
	e.Path = filepath.Dir(p)
	e.CreateTime = info.ModTime().UnixMilli()
	e.DOMVersion = 0
	e.BlockRenderingFlags = 0
	return e
}

func (s *Scanner) fileEntry(p string, info os.FileInfo) *catalog.Entry {
	f := s.Formats.Classify(info.Name())
	if f == format.None {
		return nil
	}
	e := catalog.NewEntry()
	e.Pathname = p
	e.FileName = info.Name()
	e.Path = filepath.Dir(p)
	e.Format = f
	e.Size = info.Size()
	e.CreateTime = info.ModTime().UnixMilli()
	if s.Checksums {
		sum, err := s.FS.Checksum(p)
		if err != nil {
			s.log().Warn("checksum failed", zap.String("path", p), zap.Error(err))
		} else {
			e.CRC32 = sum
		}
	}
	return e
}

// archiveEntry shows an archive holding one document as that document, and
// an archive holding several as a listed container directory. Archives
// without documents are skipped.
func (s *Scanner) archiveEntry(p string, info os.FileInfo) *catalog.Entry {
	members, err := s.members(p, info.Size())
	if err != nil {
		s.log().Warn("skipping unreadable archive", zap.String("archive", p), zap.Error(err))
		return nil
	}
	switch len(members) {
	case 0:
		return nil
	case 1:
		return members[0]
	}
	c := catalog.NewEntry()
	c.IsArchive = true
	c.IsDirectory = true
	c.Pathname = p
	c.FileName = info.Name()
	c.Path = filepath.Dir(p)
	c.Size = info.Size()
	c.ArcSize = info.Size()
	c.CreateTime = info.ModTime().UnixMilli()
	c.DOMVersion = 0
	c.BlockRenderingFlags = 0
	c.SetItems(members)
	c.IsScanned = true
	return c
}

func (s *Scanner) members(archivePath string, size int64) ([]*catalog.Entry, error) {
	if s.Archives == nil {
		return nil, fmt.Errorf("scan %s: %w", archivePath, ErrNotDirectory)
	}
	items, err := s.Archives.Items(archivePath)
	if err != nil {
		return nil, err
	}
	var out []*catalog.Entry
	for _, it := range items {
		if it.IsDir {
			continue
		}
		if !s.Hidden && strings.HasPrefix(filepath.Base(it.Name), ".") {
			continue
		}
		f := s.Formats.Classify(it.Name)
		if f == format.None {
			continue
		}
		out = append(out, catalog.NewArchiveMember(archivePath, size, it, f))
	}
	return out, nil
}
