package catalog

import "strings"

const (
	// ArcSeparator separates an archive path from a member path inside it.
	// It never occurs in ordinary filesystem paths.
	ArcSeparator = "@/"

	// VirtualMarker starts every reserved virtual path. Real paths are
	// absolute and never start with it.
	VirtualMarker = "@"
)

// SplitComposite splits "<archive>@/<member>" at the first separator.
// For a path without a separator, or with an empty archive part, it returns
// (p, "", false).
func SplitComposite(p string) (member, archive string, ok bool) {
	i := strings.Index(p, ArcSeparator)
	if i <= 0 {
		return p, "", false
	}
	return p[i+len(ArcSeparator):], p[:i], true
}

// JoinComposite is the inverse of SplitComposite.
func JoinComposite(member, archive string) string {
	if archive == "" {
		return member
	}
	return archive + ArcSeparator + member
}

// VirtualKind classifies reserved virtual paths. NotVirtual covers every
// real filesystem path.
type VirtualKind int

const (
	NotVirtual VirtualKind = iota

	RecentRoot
	SearchResultsRoot
	LibraryRoot
	OPDSRoot
	GenresRoot
	AuthorsRoot
	SeriesRoot
	RatingRoot
	StateToReadRoot
	StateReadingRoot
	StateFinishedRoot
	TitlesRoot
	SearchShortcut

	OPDSNode
	PluginNode
	GenresGroup
	GenreNode
	AuthorGroup
	AuthorNode
	SeriesGroup
	SeriesNode
	TitleGroup

	// UnknownVirtual starts with the marker but matches no known tag.
	UnknownVirtual
)

var rootTags = map[VirtualKind]string{
	RecentRoot:        "@recent",
	SearchResultsRoot: "@searchResults",
	LibraryRoot:       "@root",
	OPDSRoot:          "@opds",
	GenresRoot:        "@genresRoot",
	AuthorsRoot:       "@authorsRoot",
	SeriesRoot:        "@seriesRoot",
	RatingRoot:        "@ratingRoot",
	StateToReadRoot:   "@stateToReadRoot",
	StateReadingRoot:  "@stateReadingRoot",
	StateFinishedRoot: "@stateFinishedRoot",
	TitlesRoot:        "@titlesRoot",
	SearchShortcut:    "@search",
}

var tagKinds = func() map[string]VirtualKind {
	m := make(map[string]VirtualKind, len(rootTags))
	for k, tag := range rootTags {
		m[tag] = k
	}
	return m
}()

// prefixes is ordered so that no entry is shadowed by an earlier one.
var prefixes = []struct {
	kind   VirtualKind
	prefix string
}{
	{GenresGroup, "@genresGroup:"},
	{AuthorGroup, "@authorGroup:"},
	{SeriesGroup, "@seriesGroup:"},
	{TitleGroup, "@titleGroup:"},
	{PluginNode, "@plugin:"},
	{SeriesNode, "@series:"},
	{AuthorNode, "@author:"},
	{GenreNode, "@genre:"},
	{OPDSNode, "@opds:"},
}

// ClassifyPath returns the virtual kind of a pathname. Exact tags are tested
// before prefixes.
func ClassifyPath(pathname string) VirtualKind {
	if !strings.HasPrefix(pathname, VirtualMarker) {
		return NotVirtual
	}
	if k, ok := tagKinds[pathname]; ok {
		return k
	}
	for _, p := range prefixes {
		if strings.HasPrefix(pathname, p.prefix) {
			return p.kind
		}
	}
	return UnknownVirtual
}

// Parametrized reports whether paths of this kind carry a parameter after a prefix.
func (k VirtualKind) Parametrized() bool {
	return k >= OPDSNode && k <= TitleGroup
}

// Tag returns the sentinel for root kinds or the prefix for parametrized kinds.
func (k VirtualKind) Tag() string {
	if tag, ok := rootTags[k]; ok {
		return tag
	}
	for _, p := range prefixes {
		if p.kind == k {
			return p.prefix
		}
	}
	return ""
}

// Path builds the pathname for a virtual node of this kind. param is
// ignored for root kinds.
func (k VirtualKind) Path(param string) string {
	if k.Parametrized() {
		return k.Tag() + param
	}
	return k.Tag()
}

// Param strips the kind's prefix from pathname. It returns "" when the
// pathname is not of this kind.
func (k VirtualKind) Param(pathname string) string {
	if !k.Parametrized() || ClassifyPath(pathname) != k {
		return ""
	}
	return strings.TrimPrefix(pathname, k.Tag())
}

func (k VirtualKind) String() string {
	if k == NotVirtual {
		return "plain"
	}
	if k == UnknownVirtual {
		return "virtual"
	}
	return strings.TrimSuffix(strings.TrimPrefix(k.Tag(), VirtualMarker), ":")
}
