package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dirEntry(p string) *Entry {
	e := NewEntry()
	e.IsDirectory = true
	e.Pathname = p
	e.FileName = baseName(p)
	return e
}

func fileEntry(p string) *Entry {
	e := NewEntry()
	e.Pathname = p
	e.FileName = baseName(p)
	return e
}

func TestEntry_AddItemsDirsBeforeFiles(t *testing.T) {
	parent := dirEntry("/lib")
	other := dirEntry("/elsewhere")
	items := []*Entry{
		fileEntry("/lib/a.fb2"),
		dirEntry("/lib/d1"),
		fileEntry("/lib/b.fb2"),
		dirEntry("/lib/d2"),
		fileEntry("/lib/c.fb2"),
	}
	items[0].SetParent(other)
	parent.AddItems(items)

	require.Equal(t, len(items), parent.DirCount()+parent.FileCount())
	var got []string
	for i := 0; i < parent.ItemCount(); i++ {
		got = append(got, parent.Item(i).Pathname)
	}
	assert.Equal(t, []string{"/lib/d1", "/lib/d2", "/lib/a.fb2", "/lib/b.fb2", "/lib/c.fb2"}, got)
	for _, it := range items {
		assert.Same(t, parent, it.Parent())
	}
}

func TestEntry_AddKeepsExistingParent(t *testing.T) {
	a, b := dirEntry("/a"), dirEntry("/b")
	f := fileEntry("/a/x.txt")
	a.AddFile(f)
	b.AddFile(f)
	assert.Same(t, a, f.Parent())
	assert.Equal(t, 1, b.FileCount())
}

func TestEntry_ItemOutOfRange(t *testing.T) {
	d := dirEntry("/lib")
	d.AddFile(fileEntry("/lib/a.fb2"))
	assert.NotNil(t, d.Item(0))
	assert.Nil(t, d.Item(1))
	assert.Nil(t, d.Item(-1))
	assert.Nil(t, d.Dir(0))
	assert.Nil(t, d.File(3))
}

func TestEntry_SetItems(t *testing.T) {
	d := dirEntry("/lib")
	d.AddFile(fileEntry("/lib/old.fb2"))
	d.SetItems([]*Entry{fileEntry("/lib/new.fb2"), dirEntry("/lib/sub")})
	assert.True(t, d.IsListed)
	assert.Equal(t, 1, d.FileCount())
	assert.Equal(t, "/lib/new.fb2", d.File(0).Pathname)
	assert.Equal(t, "/lib/sub", d.Dir(0).Pathname)
}

func TestEntry_SetItemsFromCopiesSubtree(t *testing.T) {
	src := dirEntry("/lib")
	src.IsListed, src.IsScanned = true, true
	sub := dirEntry("/lib/sub")
	sub.AddFile(fileEntry("/lib/sub/x.fb2"))
	src.AddDir(sub)
	src.AddFile(fileEntry("/lib/a.fb2"))

	dst := dirEntry("/lib")
	dst.SetItemsFrom(src)

	assert.True(t, dst.IsListed)
	assert.True(t, dst.IsScanned)
	require.Equal(t, 1, dst.DirCount())
	require.Equal(t, 1, dst.FileCount())
	assert.NotSame(t, sub, dst.Dir(0))
	assert.Same(t, dst, dst.Dir(0).Parent())
	assert.Same(t, dst.Dir(0), dst.Dir(0).File(0).Parent())
	assert.Same(t, src, sub.Parent(), "source keeps its children")
}

func TestEntry_UpdateItem(t *testing.T) {
	t.Run("directory gets fields and subtree", func(t *testing.T) {
		parent := dirEntry("/lib")
		old := dirEntry("/lib/sub")
		old.AddFile(fileEntry("/lib/sub/stale.fb2"))
		parent.AddDir(old)

		upd := dirEntry("/lib/sub")
		upd.Title = "Renamed"
		upd.AddFile(fileEntry("/lib/sub/fresh.fb2"))
		upd.AddDir(dirEntry("/lib/sub/deeper"))

		require.True(t, parent.UpdateItem(upd))
		assert.Same(t, old, parent.Dir(0))
		assert.Equal(t, "Renamed", old.Title)
		require.Equal(t, 1, old.FileCount())
		assert.Equal(t, "/lib/sub/fresh.fb2", old.File(0).Pathname)
		assert.Equal(t, 1, old.DirCount())
	})

	t.Run("file gets scalar fields only", func(t *testing.T) {
		parent := dirEntry("/lib")
		old := fileEntry("/lib/a.fb2")
		old.IsListed = true
		parent.AddFile(old)

		upd := fileEntry("/lib/a.fb2")
		upd.Title = "New title"
		upd.Size = 99
		upd.AddFile(fileEntry("/lib/a.fb2/bogus"))

		require.True(t, parent.UpdateItem(upd))
		assert.Equal(t, "New title", old.Title)
		assert.Equal(t, int64(99), old.Size)
		assert.True(t, old.IsListed)
		assert.True(t, old.IsEmpty())
	})

	t.Run("no match", func(t *testing.T) {
		parent := dirEntry("/lib")
		parent.AddFile(fileEntry("/lib/a.fb2"))
		assert.False(t, parent.UpdateItem(fileEntry("/lib/b.fb2")))
		assert.False(t, parent.UpdateItem(dirEntry("/lib/a.fb2")), "directory flag is part of identity")
	})
}

func TestEntry_RemoveChild(t *testing.T) {
	parent := dirEntry("/lib")
	f := fileEntry("/lib/a.fb2")
	d := dirEntry("/lib/d")
	v := NewVirtual(RecentRoot, "", "Recent")
	parent.AddFile(f)
	parent.AddDir(d)
	parent.AddDir(v)

	assert.False(t, parent.RemoveChild(v))
	assert.True(t, parent.RemoveChild(fileEntry("/lib/a.fb2")))
	assert.Nil(t, f.Parent())
	assert.True(t, parent.RemoveChild(d))
	assert.False(t, parent.RemoveChild(d))
	assert.Equal(t, 1, parent.ItemCount())
}

func TestEntry_RemoveEmptyDirs(t *testing.T) {
	root := NewVirtual(LibraryRoot, "", "Library")
	lib := dirEntry("/lib")
	root.AddDir(lib)
	lib.IsListed = true

	empty := dirEntry("/lib/empty")
	empty.IsListed = true
	unlisted := dirEntry("/lib/unlisted")
	full := dirEntry("/lib/full")
	full.IsListed = true
	full.AddFile(fileEntry("/lib/full/a.fb2"))
	virtual := NewVirtual(SearchResultsRoot, "", "Found")
	virtual.IsListed = true
	lib.AddItems([]*Entry{empty, unlisted, full, virtual})

	assert.True(t, lib.RemoveEmptyDirs())
	var left []string
	for _, d := range lib.Dirs() {
		left = append(left, d.Pathname)
	}
	assert.Equal(t, []string{"/lib/unlisted", "/lib/full", "@searchResults"}, left)
	assert.False(t, lib.RemoveEmptyDirs())

	assert.False(t, root.RemoveEmptyDirs(), "virtual roots are never pruned")
	lib.IsListed = false
	unlisted.IsListed = true
	assert.False(t, lib.RemoveEmptyDirs(), "unlisted parents are skipped")
}

func TestEntry_IndexLookup(t *testing.T) {
	d := dirEntry("/lib")
	for i := 0; i < 3; i++ {
		d.AddFile(fileEntry(fmt.Sprintf("/lib/%d.fb2", i)))
	}
	d.AddDir(dirEntry("/lib/sub"))

	assert.Equal(t, 0, d.ItemIndex(dirEntry("/lib/sub")))
	assert.Equal(t, 3, d.ItemIndex(fileEntry("/lib/2.fb2")))
	assert.Equal(t, 2, d.FileIndex(fileEntry("/lib/2.fb2")))
	assert.Equal(t, -1, d.ItemIndex(fileEntry("/lib/9.fb2")))
	assert.True(t, d.HasItem(fileEntry("/lib/0.fb2")))

	repl := fileEntry("/lib/1.fb2")
	repl.Title = "replacement"
	assert.True(t, d.ReplaceFile(repl))
	assert.Same(t, repl, d.File(1))
	assert.Same(t, d, repl.Parent())
	assert.False(t, d.SetFile(5, repl))
}

func removableTree() (sd *Entry) {
	root := NewVirtual(LibraryRoot, "", "Library")
	sd = dirEntry("/storage/sdcard1")
	sd.FileName, sd.Title = "SD", "SD"
	root.AddDir(sd)
	return sd
}

func TestEntry_IsOnRemovableStorage(t *testing.T) {
	sd := removableTree()
	books := dirEntry("/storage/sdcard1/Books")
	sd.AddDir(books)
	assert.True(t, books.IsOnRemovableStorage())
	assert.True(t, sd.IsOnRemovableStorage())

	plain := dirEntry("/home/books")
	NewVirtual(LibraryRoot, "", "Library").AddDir(plain)
	assert.False(t, plain.IsOnRemovableStorage())

	sd.Size = 10
	assert.False(t, books.IsOnRemovableStorage())
}

func TestEntry_FindItemByPathName(t *testing.T) {
	t.Run("exact only on plain storage", func(t *testing.T) {
		d := dirEntry("/lib")
		d.AddFile(fileEntry("/lib/Book.fb2"))
		assert.NotNil(t, d.FindItemByPathName("/lib/Book.fb2"))
		assert.Nil(t, d.FindItemByPathName("/lib/book.fb2"))
	})

	t.Run("case-insensitive and archive prefix on removable storage", func(t *testing.T) {
		sd := removableTree()
		books := dirEntry("/storage/sdcard1/Books")
		sd.AddDir(books)
		books.AddDir(dirEntry("/storage/sdcard1/Books/Sub"))
		member := NewArchiveMember("/storage/sdcard1/Books/Pack.zip", 10, ArchiveItem{Name: "a.fb2"}, 0)
		books.AddFile(member)

		assert.NotNil(t, books.FindItemByPathName("/storage/sdcard1/books/sub"))
		assert.Same(t, member, books.FindItemByPathName("/storage/sdcard1/books/pack.zip"))
		assert.Nil(t, books.FindItemByPathName("/storage/sdcard1/books/pa"))
	})
}

func TestEntry_Walk(t *testing.T) {
	d := dirEntry("/lib")
	sub := dirEntry("/lib/sub")
	sub.AddFile(fileEntry("/lib/sub/x.fb2"))
	d.AddItems([]*Entry{fileEntry("/lib/a.fb2"), sub})

	var seen []string
	d.Walk(func(e *Entry) bool {
		seen = append(seen, e.Pathname)
		return true
	})
	assert.Equal(t, []string{"/lib", "/lib/sub", "/lib/sub/x.fb2", "/lib/a.fb2"}, seen)

	seen = nil
	d.Walk(func(e *Entry) bool {
		seen = append(seen, e.Pathname)
		return e != sub
	})
	assert.Equal(t, []string{"/lib", "/lib/sub", "/lib/a.fb2"}, seen)
}
