// Package probe exposes a filesystem to the catalog and the scanner through
// go-billy, so the same code runs against the host OS and in-memory trees.
package probe

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

var errReadOnly = fmt.Errorf("read-only filesystem")

// FS is a billy filesystem with the extra queries the scanner needs.
// It satisfies catalog.Probe.
type FS struct {
	billy.Filesystem
	readOnly bool
}

// New wraps fsys.
func New(fsys billy.Filesystem) *FS {
	return &FS{Filesystem: fsys}
}

// OS returns a probe over the host filesystem. Paths are absolute.
func OS() *FS {
	return New(osfs.New("/"))
}

// Memory returns an empty in-memory probe.
func Memory() *FS {
	return New(memfs.New())
}

// ReadOnly returns a view of p whose Remove always fails.
func (p *FS) ReadOnly() *FS {
	return &FS{Filesystem: p.Filesystem, readOnly: true}
}

func (p *FS) Remove(name string) error {
	if p.readOnly {
		return &os.PathError{Op: "remove", Path: name, Err: errReadOnly}
	}
	return p.Filesystem.Remove(name)
}

// List returns the entries of dir sorted by name.
func (p *FS) List(dir string) ([]os.FileInfo, error) {
	infos, err := p.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })
	return infos, nil
}

// IsDir reports whether name exists and is a directory.
func (p *FS) IsDir(name string) bool {
	info, err := p.Stat(name)
	return err == nil && info.IsDir()
}

// Checksum returns the IEEE CRC-32 of the file's content, the same
// checksum zip archives store for their members.
func (p *FS) Checksum(name string) (uint32, error) {
	f, err := p.Open(name)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return 0, fmt.Errorf("checksum %s: %w", name, err)
	}
	return h.Sum32(), nil
}
