package catalog

import (
	"strings"

	"go.uber.org/zap"
)

func (e *Entry) DirCount() int  { return len(e.dirs) }
func (e *Entry) FileCount() int { return len(e.files) }
func (e *Entry) ItemCount() int { return len(e.dirs) + len(e.files) }
func (e *Entry) IsEmpty() bool  { return e.ItemCount() == 0 }

// Dirs returns a copy of the child directory list.
func (e *Entry) Dirs() []*Entry {
	return append([]*Entry(nil), e.dirs...)
}

// Files returns a copy of the child file list.
func (e *Entry) Files() []*Entry {
	return append([]*Entry(nil), e.files...)
}

// Dir returns the i-th child directory, or nil when out of range.
func (e *Entry) Dir(i int) *Entry {
	if i < 0 || i >= len(e.dirs) {
		return nil
	}
	return e.dirs[i]
}

// File returns the i-th child file, or nil when out of range.
func (e *Entry) File(i int) *Entry {
	if i < 0 || i >= len(e.files) {
		return nil
	}
	return e.files[i]
}

// Item indexes directories first, then files. An out-of-range index is
// logged and yields nil; enumerating callers rely on that.
func (e *Entry) Item(i int) *Entry {
	if i >= 0 && i < len(e.dirs) {
		return e.dirs[i]
	}
	if j := i - len(e.dirs); i >= 0 && j < len(e.files) {
		return e.files[j]
	}
	lg().Error("index out of bounds",
		zap.Int("index", i),
		zap.Int("items", e.ItemCount()),
		zap.String("path", e.Pathname))
	return nil
}

// AddDir appends d. The parent is set only if d has none yet.
func (e *Entry) AddDir(d *Entry) {
	e.dirs = append(e.dirs, d)
	if d.parent == nil {
		d.parent = e
	}
}

// AddFile appends f. The parent is set only if f has none yet.
func (e *Entry) AddFile(f *Entry) {
	e.files = append(e.files, f)
	if f.parent == nil {
		f.parent = e
	}
}

// AddItems files each item by its own directory flag and makes e its parent.
func (e *Entry) AddItems(items []*Entry) {
	for _, item := range items {
		if item.IsDirectory {
			e.AddDir(item)
		} else {
			e.AddFile(item)
		}
		item.parent = e
	}
}

// ReplaceItems drops all children and adds items.
func (e *Entry) ReplaceItems(items []*Entry) {
	e.Clear()
	e.AddItems(items)
}

// Clear drops all children.
func (e *Entry) Clear() {
	e.dirs = nil
	e.files = nil
}

// SetItemsFrom replaces e's children with deep copies of src's children
// (files first, then directories) and takes over src's listed/scanned markers.
// src keeps its own children.
func (e *Entry) SetItemsFrom(src *Entry) {
	if e == src {
		return
	}
	e.Clear()
	for _, f := range src.files {
		c := f.Clone()
		c.parent = e
		e.AddFile(c)
	}
	for _, d := range src.dirs {
		c := d.Clone()
		c.parent = e
		e.AddDir(c)
	}
	e.IsListed = src.IsListed
	e.IsScanned = src.IsScanned
}

// SetItems replaces e's children with items and marks e listed.
func (e *Entry) SetItems(items []*Entry) {
	e.Clear()
	e.AddItems(items)
	e.IsListed = true
}

// Clone returns a deep copy of e and its subtree. The copy has no parent.
func (e *Entry) Clone() *Entry {
	c := e.Copy()
	c.IsListed = e.IsListed
	c.IsScanned = e.IsScanned
	for _, d := range e.dirs {
		cd := d.Clone()
		cd.parent = c
		c.dirs = append(c.dirs, cd)
	}
	for _, f := range e.files {
		cf := f.Clone()
		cf.parent = c
		c.files = append(c.files, cf)
	}
	return c
}

// PathNameEquals is path identity: same directory flag, archive and path.
func (e *Entry) PathNameEquals(o *Entry) bool {
	return e.IsDirectory == o.IsDirectory && e.ArcName == o.ArcName && e.Pathname == o.Pathname
}

// UpdateItem finds the child with item's path identity (directories first)
// and copies item's scalar fields onto it. A matching directory also gets a
// copy of item's subtree. It reports whether a child matched.
func (e *Entry) UpdateItem(item *Entry) bool {
	for _, d := range e.dirs {
		if d.PathNameEquals(item) {
			d.Assign(item)
			d.SetItemsFrom(item)
			return true
		}
	}
	for _, f := range e.files {
		if f.PathNameEquals(item) {
			f.Assign(item)
			return true
		}
	}
	return false
}

// RemoveChild removes the first child with item's path identity, files
// first. Virtual nodes are never removed.
func (e *Entry) RemoveChild(item *Entry) bool {
	if item.IsSpecialDir() {
		return false
	}
	if i := indexOf(e.files, item); i >= 0 {
		e.files = e.release(e.files, i)
		return true
	}
	if i := indexOf(e.dirs, item); i >= 0 {
		e.dirs = e.release(e.dirs, i)
		return true
	}
	return false
}

func (e *Entry) release(list []*Entry, i int) []*Entry {
	if list[i].parent == e {
		list[i].parent = nil
	}
	return append(list[:i], list[i+1:]...)
}

func indexOf(list []*Entry, item *Entry) int {
	for i, c := range list {
		if c == item {
			return i
		}
	}
	for i, c := range list {
		if c.PathNameEquals(item) {
			return i
		}
	}
	return -1
}

// RemoveEmptyDirs prunes listed child directories that have no children.
// It only runs on a listed, non-virtual directory that has a parent, and it
// never prunes virtual or unlisted directories.
func (e *Entry) RemoveEmptyDirs() bool {
	if e.parent == nil || e.IsSpecialDir() || !e.IsListed || len(e.dirs) == 0 {
		return false
	}
	removed := false
	for i := len(e.dirs) - 1; i >= 0; i-- {
		d := e.dirs[i]
		if d.IsListed && !d.IsSpecialDir() && d.IsEmpty() {
			e.dirs = e.release(e.dirs, i)
			removed = true
		}
	}
	return removed
}

// ItemIndex returns item's flat index (directories first), or -1.
func (e *Entry) ItemIndex(item *Entry) int {
	if item == nil {
		return -1
	}
	for i, d := range e.dirs {
		if item.PathNameEquals(d) {
			return i
		}
	}
	if i := e.FileIndex(item); i >= 0 {
		return i + len(e.dirs)
	}
	return -1
}

// FileIndex returns item's index among files, or -1.
func (e *Entry) FileIndex(item *Entry) int {
	if item == nil {
		return -1
	}
	for i, f := range e.files {
		if item.PathNameEquals(f) {
			return i
		}
	}
	return -1
}

func (e *Entry) HasItem(item *Entry) bool {
	return e.ItemIndex(item) >= 0
}

// SetFile replaces the i-th file and reparents it. It reports false when i
// is out of range.
func (e *Entry) SetFile(i int, f *Entry) bool {
	if i < 0 || i >= len(e.files) {
		return false
	}
	e.files[i] = f
	f.parent = e
	return true
}

// ReplaceFile replaces the file with f's path identity.
func (e *Entry) ReplaceFile(f *Entry) bool {
	return e.SetFile(e.FileIndex(f), f)
}

// IsOnRemovableStorage walks the ancestors looking for a removable-storage
// mount: a plain empty directory named and titled "SD" or "EXT SD" that sits
// directly under the library root.
func (e *Entry) IsOnRemovableStorage() bool {
	for n := e; n != nil && n.parent != nil; n = n.parent {
		if n.isRemovableMount() {
			return true
		}
	}
	return false
}

func (e *Entry) isRemovableMount() bool {
	named := (e.FileName == "SD" && e.Title == "SD") || (e.FileName == "EXT SD" && e.Title == "EXT SD")
	return named && e.IsDirectory && !e.IsArchive && e.Size == 0 && e.ArcSize == 0 &&
		e.parent != nil && e.parent.IsRootDir()
}

// FindItemByPathName looks a child up by canonical path. Under removable
// storage, which may report inconsistent casing, the comparison ignores case
// and a file also matches when q names its archive.
func (e *Entry) FindItemByPathName(q string) *Entry {
	removable := e.IsOnRemovableStorage()
	same := func(p string) bool {
		return p == q || (removable && strings.EqualFold(p, q))
	}
	for _, d := range e.dirs {
		if same(d.CanonicalPath()) {
			return d
		}
	}
	for _, f := range e.files {
		p := f.CanonicalPath()
		if same(p) {
			return f
		}
		if removable && len(p) > len(q) && strings.EqualFold(p[:len(q)], q) && strings.HasPrefix(p[len(q):], ArcSeparator) {
			return f
		}
	}
	return nil
}

// Walk visits e and its descendants depth-first, directories before files.
// Returning false from fn skips the children of that entry.
func (e *Entry) Walk(fn func(*Entry) bool) {
	if !fn(e) {
		return
	}
	for _, d := range e.dirs {
		d.Walk(fn)
	}
	for _, f := range e.files {
		f.Walk(fn)
	}
}
