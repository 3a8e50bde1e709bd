// Package archive lists the members of document archives.
package archive

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/efermi/coolreader/internal/catalog"
	"github.com/go-git/go-billy/v5"
	"github.com/klauspost/compress/zip"
)

var (
	// ErrNotArchive is returned for files that are not readable zip archives.
	ErrNotArchive = errors.New("not an archive")
	ErrNotFound   = errors.New("member not found")
)

// ZipIndex reads zip central directories through a billy filesystem.
type ZipIndex struct {
	FS billy.Filesystem
	// Exts are the lower-case extensions, with dot, treated as archives.
	Exts []string
}

// NewZipIndex returns an index over fsys that recognizes exts, or ".zip"
// when exts is empty.
func NewZipIndex(fsys billy.Filesystem, exts ...string) *ZipIndex {
	if len(exts) == 0 {
		exts = []string{".zip"}
	}
	return &ZipIndex{FS: fsys, Exts: exts}
}

// IsArchive reports whether name has one of the archive extensions.
func (z *ZipIndex) IsArchive(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range z.Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Items lists the archive's members in central-directory order.
func (z *ZipIndex) Items(archivePath string) ([]catalog.ArchiveItem, error) {
	r, closer, err := z.open(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = closer.Close() }()

	items := make([]catalog.ArchiveItem, 0, len(r.File))
	for _, f := range r.File {
		items = append(items, catalog.ArchiveItem{
			Name:     strings.TrimSuffix(f.Name, "/"),
			IsDir:    f.FileInfo().IsDir(),
			Size:     int64(f.UncompressedSize64),
			Modified: f.Modified,
			CRC32:    f.CRC32,
		})
	}
	return items, nil
}

// Documents returns the non-directory members of the archive.
func (z *ZipIndex) Documents(archivePath string) ([]catalog.ArchiveItem, error) {
	items, err := z.Items(archivePath)
	if err != nil {
		return nil, err
	}
	docs := items[:0]
	for _, it := range items {
		if !it.IsDir {
			docs = append(docs, it)
		}
	}
	return docs, nil
}

// Open returns a reader for one member.
func (z *ZipIndex) Open(archivePath, member string) (io.ReadCloser, error) {
	r, closer, err := z.open(archivePath)
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.Name != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("open %s in %s: %w", member, archivePath, err)
		}
		return &memberReader{ReadCloser: rc, archive: closer}, nil
	}
	_ = closer.Close()
	return nil, fmt.Errorf("open %s in %s: %w", member, archivePath, ErrNotFound)
}

func (z *ZipIndex) open(archivePath string) (*zip.Reader, io.Closer, error) {
	if !z.IsArchive(archivePath) {
		return nil, nil, fmt.Errorf("%s: %w", archivePath, ErrNotArchive)
	}
	info, err := z.FS.Stat(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("stat archive: %w", err)
	}
	f, err := z.FS.Open(archivePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	r, err := zip.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		if errors.Is(err, zip.ErrFormat) {
			return nil, nil, fmt.Errorf("%s: %w", archivePath, ErrNotArchive)
		}
		return nil, nil, fmt.Errorf("read archive %s: %w", archivePath, err)
	}
	return r, f, nil
}

type memberReader struct {
	io.ReadCloser
	archive io.Closer
}

func (m *memberReader) Close() error {
	err := m.ReadCloser.Close()
	if cerr := m.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
