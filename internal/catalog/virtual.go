package catalog

import "strings"

// Virtual classifies the entry's pathname.
func (e *Entry) Virtual() VirtualKind {
	return ClassifyPath(e.Pathname)
}

func (e *Entry) IsSpecialDir() bool {
	return strings.HasPrefix(e.Pathname, VirtualMarker)
}

func (e *Entry) IsRecentDir() bool      { return e.Virtual() == RecentRoot }
func (e *Entry) IsSearchDir() bool      { return e.Virtual() == SearchResultsRoot }
func (e *Entry) IsRootDir() bool        { return e.Virtual() == LibraryRoot }
func (e *Entry) IsOPDSRoot() bool       { return e.Virtual() == OPDSRoot }
func (e *Entry) IsSearchShortcut() bool { return e.Virtual() == SearchShortcut }

func (e *Entry) IsBooksByGenreRoot() bool         { return e.Virtual() == GenresRoot }
func (e *Entry) IsBooksByAuthorRoot() bool        { return e.Virtual() == AuthorsRoot }
func (e *Entry) IsBooksBySeriesRoot() bool        { return e.Virtual() == SeriesRoot }
func (e *Entry) IsBooksByRatingRoot() bool        { return e.Virtual() == RatingRoot }
func (e *Entry) IsBooksByStateToReadRoot() bool   { return e.Virtual() == StateToReadRoot }
func (e *Entry) IsBooksByStateReadingRoot() bool  { return e.Virtual() == StateReadingRoot }
func (e *Entry) IsBooksByStateFinishedRoot() bool { return e.Virtual() == StateFinishedRoot }
func (e *Entry) IsBooksByTitleRoot() bool         { return e.Virtual() == TitlesRoot }

func (e *Entry) IsBooksByGenreDir() bool  { return e.Virtual() == GenreNode }
func (e *Entry) IsBooksByAuthorDir() bool { return e.Virtual() == AuthorNode }
func (e *Entry) IsBooksBySeriesDir() bool { return e.Virtual() == SeriesNode }

// FeedEntry returns the remote-catalog payload, or nil.
func (e *Entry) FeedEntry() *FeedEntry {
	f, _ := e.Payload.(*FeedEntry)
	return f
}

// StoreBook returns the online-store payload, or nil.
func (e *Entry) StoreBook() *StoreBook {
	b, _ := e.Payload.(*StoreBook)
	return b
}

// GenreStats returns the genre aggregate payload, if any.
func (e *Entry) GenreStats() (GenreStats, bool) {
	g, ok := e.Payload.(GenreStats)
	return g, ok
}

// IsOPDSDir reports a remote-catalog navigation node: under the feed prefix
// and without a downloadable acquisition link.
func (e *Entry) IsOPDSDir() bool {
	return e.Virtual() == OPDSNode && e.FeedEntry().BestAcquisitionLink() == nil
}

// IsOPDSBook reports a remote-catalog book with an acquisition link.
func (e *Entry) IsOPDSBook() bool {
	return e.Virtual() == OPDSNode && e.FeedEntry().BestAcquisitionLink() != nil
}

func (e *Entry) IsOnlineCatalogPluginDir() bool {
	return e.Virtual() == PluginNode
}

func (e *Entry) IsOnlineCatalogPluginBook() bool {
	return !e.IsDirectory && e.Virtual() == PluginNode && e.StoreBook() != nil
}

// OPDSURL returns the feed URL of a remote-catalog node, or "".
func (e *Entry) OPDSURL() string {
	return OPDSNode.Param(e.Pathname)
}

// Plugin paths look like "@plugin:<package>:<path>", where path may end in
// "=<id>".

func (e *Entry) PluginPackage() string {
	s := PluginNode.Param(e.Pathname)
	if i := strings.Index(s, ":"); i >= 0 {
		return s[:i]
	}
	return s
}

func (e *Entry) PluginPath() string {
	s := PluginNode.Param(e.Pathname)
	if i := strings.Index(s, ":"); i >= 0 {
		return s[i+1:]
	}
	return ""
}

func (e *Entry) PluginID() string {
	s := e.PluginPath()
	if i := strings.Index(s, "="); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// GenreCode returns the genre code of a genre node, or "".
func (e *Entry) GenreCode() string {
	return GenreNode.Param(e.Pathname)
}

// AuthorID returns the database id of an author node, or 0.
func (e *Entry) AuthorID() int64 {
	if !e.IsBooksByAuthorDir() || e.ID == nil {
		return 0
	}
	return *e.ID
}

// SeriesID returns the database id of a series node, or 0.
func (e *Entry) SeriesID() int64 {
	if !e.IsBooksBySeriesDir() || e.ID == nil {
		return 0
	}
	return *e.ID
}

// IsHidden reports dot-files.
func (e *Entry) IsHidden() bool {
	return strings.HasPrefix(e.FileName, ".")
}

// AllowSorting reports whether a UI may re-sort this directory's listing.
// Recents, the library root, feed navigation and series listings keep their
// own order.
func (e *Entry) AllowSorting() bool {
	return e.IsDirectory && !e.IsRootDir() && !e.IsRecentDir() && !e.IsOPDSDir() && !e.IsBooksBySeriesDir()
}
