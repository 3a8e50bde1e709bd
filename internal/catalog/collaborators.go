package catalog

import (
	"io/fs"
	"time"

	"github.com/efermi/coolreader/internal/format"
)

// ArchiveItem is one member reported by an ArchiveIndex.
type ArchiveItem struct {
	Name     string // slash-separated path inside the archive
	IsDir    bool
	Size     int64
	Modified time.Time
	CRC32    uint32
}

// ArchiveIndex lists the members of an archive in archive order.
type ArchiveIndex interface {
	Items(archivePath string) ([]ArchiveItem, error)
}

// FormatClassifier maps a file name to a document format.
type FormatClassifier interface {
	Classify(name string) format.Format
}

// Probe is the filesystem access the catalog needs. Any billy.Filesystem
// satisfies it.
type Probe interface {
	Stat(name string) (fs.FileInfo, error)
	Remove(name string) error
}
