package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitComposite_RoundTrip(t *testing.T) {
	cases := []struct{ archive, member string }{
		{"/sdcard/book.zip", "chapter1.fb2"},
		{"/lib/a b/c.zip", "dir/inner/x.txt"},
		{"/x.zip", "y"},
	}
	for _, tc := range cases {
		p := tc.archive + ArcSeparator + tc.member
		member, archive, ok := SplitComposite(p)
		assert.True(t, ok)
		assert.Equal(t, tc.member, member)
		assert.Equal(t, tc.archive, archive)

		e := (&Resolver{}).FromPath(p)
		assert.Equal(t, p, e.CanonicalPath())
	}

	_, _, ok := SplitComposite("/plain/file.fb2")
	assert.False(t, ok)

	member, archive, ok := SplitComposite("@/m.fb2")
	assert.False(t, ok, "an empty archive part is not composite")
	assert.Equal(t, "@/m.fb2", member)
	assert.Empty(t, archive)
	assert.Equal(t, "@/m.fb2", (&Resolver{}).FromPath("@/m.fb2").CanonicalPath())
}

func TestClassifyPath(t *testing.T) {
	cases := map[string]VirtualKind{
		"/books":               NotVirtual,
		"@root":                LibraryRoot,
		"@recent":              RecentRoot,
		"@search":              SearchShortcut,
		"@searchResults":       SearchResultsRoot,
		"@genresRoot":          GenresRoot,
		"@titlesRoot":          TitlesRoot,
		"@opds:http://x/feed":  OPDSNode,
		"@opds":                OPDSRoot,
		"@author:42":           AuthorNode,
		"@authorGroup:A":       AuthorGroup,
		"@series:7":            SeriesNode,
		"@seriesGroup:S":       SeriesGroup,
		"@genre:sf_fantasy":    GenreNode,
		"@genresGroup:sf":      GenresGroup,
		"@titleGroup:T":        TitleGroup,
		"@plugin:litres:/a=12": PluginNode,
		"@whatever":            UnknownVirtual,
	}
	for p, want := range cases {
		assert.Equal(t, want, ClassifyPath(p), p)
	}
}

func TestVirtualKind_PathParam(t *testing.T) {
	p := AuthorNode.Path("42")
	assert.Equal(t, "@author:42", p)
	assert.Equal(t, "42", AuthorNode.Param(p))
	assert.Equal(t, "", SeriesNode.Param(p))
	assert.Equal(t, "@root", LibraryRoot.Path("ignored"))
	assert.Equal(t, "root", LibraryRoot.String())
	assert.Equal(t, "author", AuthorNode.String())
}

func TestEntry_SpecialPredicates(t *testing.T) {
	root := NewVirtual(LibraryRoot, "", "Library")
	assert.True(t, root.IsRootDir())
	assert.True(t, root.IsSpecialDir())
	assert.False(t, root.AllowSorting())

	e := NewEntry()
	e.Pathname = "@root"
	assert.True(t, e.IsRootDir())
	assert.True(t, e.IsSpecialDir())

	g := NewVirtual(GenreNode, "sf", "Science fiction")
	assert.True(t, g.IsBooksByGenreDir())
	assert.Equal(t, "sf", g.GenreCode())

	plugin := NewEntry()
	plugin.Pathname = "@plugin:litres:/new=12"
	assert.True(t, plugin.IsOnlineCatalogPluginDir())
	assert.Equal(t, "litres", plugin.PluginPackage())
	assert.Equal(t, "/new=12", plugin.PluginPath())
	assert.Equal(t, "12", plugin.PluginID())
}

func TestEntry_OPDSPayload(t *testing.T) {
	nav := NewVirtual(OPDSNode, "http://feed/root", "Feed")
	nav.Payload = &FeedEntry{Links: []FeedLink{{Href: "/next", Rel: "subsection"}}}
	assert.True(t, nav.IsOPDSDir())
	assert.False(t, nav.IsOPDSBook())
	assert.Equal(t, "http://feed/root", nav.OPDSURL())

	book := NewVirtual(OPDSNode, "http://feed/b", "Book")
	book.Payload = &FeedEntry{Links: []FeedLink{
		{Href: "/b.txt", Type: "text/plain", Rel: "http://opds-spec.org/acquisition"},
		{Href: "/b.epub", Type: "application/epub+zip", Rel: "http://opds-spec.org/acquisition/open-access"},
	}}
	assert.True(t, book.IsOPDSBook())
	assert.Equal(t, "/b.epub", book.FeedEntry().BestAcquisitionLink().Href)
}

func TestGenreStats_Packing(t *testing.T) {
	g := GenreStats{BookCount: 1234, IncludesChildren: true}
	assert.Equal(t, uint32(0x80000000|1234), g.Packed())
	assert.Equal(t, g, UnpackGenreStats(g.Packed()))
	assert.Equal(t, uint32(0x00FFFFFF), GenreStats{BookCount: 0xFFFFFFFF}.Packed())
}
