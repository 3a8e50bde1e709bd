package catalog

import (
	"path"
	"path/filepath"

	"github.com/efermi/coolreader/internal/format"
	"go.uber.org/zap"
)

// Resolver builds entries from paths using the external collaborators.
// Nil collaborators degrade gracefully: without a Probe nothing is stat'ed,
// without an ArchiveIndex members keep their path-derived fields only.
type Resolver struct {
	Probe    Probe
	Archives ArchiveIndex
	Formats  FormatClassifier
	Logger   *zap.Logger
}

func (r *Resolver) log() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return lg()
}

func (r *Resolver) classify(name string) format.Format {
	if r.Formats == nil {
		return format.ByExtension(name)
	}
	return r.Formats.Classify(name)
}

// FromPath resolves a plain path or a composite archive path. Archive
// members are hydrated from the archive index. Hydration failures are logged
// and leave the entry with the fields derived from the path alone.
func (r *Resolver) FromPath(p string) *Entry {
	member, archive, ok := SplitComposite(p)
	if !ok {
		return r.FromFile(p)
	}

	e := NewEntry()
	e.IsArchive = true
	e.ArcName = archive
	e.Pathname = member
	e.FileName = path.Base(member)
	e.Path = path.Dir(member)

	if r.Probe == nil {
		return e
	}
	info, err := r.Probe.Stat(archive)
	if err != nil || info.IsDir() {
		r.log().Warn("archive not readable", zap.String("archive", archive), zap.Error(err))
		return e
	}
	e.ArcSize = info.Size()

	if r.Archives == nil {
		return e
	}
	items, err := r.Archives.Items(archive)
	if err != nil {
		r.log().Error("error while reading contents of archive", zap.String("archive", archive), zap.Error(err))
		return e
	}
	for _, item := range items {
		if item.IsDir || item.Name != member {
			continue
		}
		e.hydrateMember(item, r.classify(item.Name))
		return e
	}
	r.log().Warn("archive member not found", zap.String("archive", archive), zap.String("member", member))
	return e
}

func (e *Entry) hydrateMember(item ArchiveItem, f format.Format) {
	e.FileName = path.Base(item.Name)
	e.Path = path.Dir(item.Name)
	e.Format = f
	e.Size = item.Size
	e.CreateTime = item.Modified.UnixMilli()
	e.CRC32 = item.CRC32
	e.DOMVersion = DefaultDOMVersion
	e.BlockRenderingFlags = DefaultBlockRenderingFlags
}

// FromFile resolves a plain filesystem path and links a parent chain of
// directory entries up to the filesystem root. The parents do not list the
// new entry as a child.
func (r *Resolver) FromFile(p string) *Entry {
	p = filepath.Clean(p)
	e := NewEntry()
	e.FileName = filepath.Base(p)
	e.Path = filepath.Dir(p)
	e.Pathname = p

	isDir := false
	if r.Probe != nil {
		info, err := r.Probe.Stat(p)
		switch {
		case err != nil:
			r.log().Debug("stat failed", zap.String("path", p), zap.Error(err))
		case info.IsDir():
			isDir = true
		default:
			e.Size = info.Size()
			e.CreateTime = info.ModTime().UnixMilli()
		}
	}

	if isDir {
		e.IsDirectory = true
		e.DOMVersion = 0
		e.BlockRenderingFlags = 0
	} else {
		e.Format = r.classify(e.FileName)
	}

	if dir := filepath.Dir(p); dir != p {
		e.parent = r.FromFile(dir)
	}
	return e
}

// NewArchiveMember builds a member entry from an already listed archive item
// without touching the filesystem.
func NewArchiveMember(archivePath string, archiveSize int64, item ArchiveItem, f format.Format) *Entry {
	e := NewEntry()
	e.IsArchive = true
	e.ArcName = archivePath
	e.ArcSize = archiveSize
	e.Pathname = item.Name
	e.hydrateMember(item, f)
	return e
}

func baseName(p string) string {
	return filepath.Base(p)
}
