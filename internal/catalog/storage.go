package catalog

import "go.uber.org/zap"

func stat(p Probe, name string) (isDir, ok bool, perm uint32) {
	if p == nil || name == "" {
		return false, false, 0
	}
	fi, err := p.Stat(name)
	if err != nil {
		return false, false, 0
	}
	return fi.IsDir(), true, uint32(fi.Mode().Perm())
}

// Exists reports whether the backing file, directory or archive exists.
// Archive-backed entries check the archive itself.
func (e *Entry) Exists(p Probe) bool {
	_, ok, _ := stat(p, e.BasePath())
	return ok
}

// FileExists is Exists restricted to documents.
func (e *Entry) FileExists(p Probe) bool {
	if e.IsDirectory {
		return false
	}
	return e.Exists(p)
}

// IsWritableDirectory reports a plain, existing directory with the owner
// write bit set.
func (e *Entry) IsWritableDirectory(p Probe) bool {
	return e.plainDirPerm(p, 0o200)
}

// IsReadableDirectory reports a plain, existing directory with the owner
// read bit set.
func (e *Entry) IsReadableDirectory(p Probe) bool {
	return e.plainDirPerm(p, 0o400)
}

func (e *Entry) plainDirPerm(p Probe, bit uint32) bool {
	if !e.IsDirectory || e.IsArchive || e.IsSpecialDir() {
		return false
	}
	isDir, ok, perm := stat(p, e.Pathname)
	return ok && isDir && perm&bit != 0
}

// DeleteFile removes the document from storage and, once that succeeded,
// from its parent. Deleting an archive member deletes the whole archive.
// Directories are never deleted. On failure the tree is left unchanged.
func (e *Entry) DeleteFile(p Probe) bool {
	if e.IsDirectory || p == nil {
		return false
	}
	target := e.Pathname
	if e.IsArchive {
		target = e.ArcName
	}
	isDir, ok, _ := stat(p, target)
	if !ok || isDir {
		return false
	}
	if err := p.Remove(target); err != nil {
		lg().Warn("delete failed", zap.String("path", target), zap.Error(err))
		return false
	}
	// Members listed inside an archive container stay; the container itself
	// is gone and gets dropped by the next rescan.
	if e.parent != nil && !(e.IsArchive && e.parent.IsArchive) {
		e.parent.RemoveChild(e)
	}
	return true
}
