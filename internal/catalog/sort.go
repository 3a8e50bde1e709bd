package catalog

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects how Sort orders the directories and files of an entry.
type SortOrder int

const (
	FileName SortOrder = iota
	FileNameDesc
	Timestamp
	TimestampDesc
	AuthorTitle
	AuthorTitleDesc
	TitleAuthor
	TitleAuthorDesc
)

// DefaultSortOrder is used when a stored order name is unknown.
const DefaultSortOrder = AuthorTitle

var sortOrderNames = [...]string{
	FileName:        "FILENAME",
	FileNameDesc:    "FILENAME_DESC",
	Timestamp:       "TIMESTAMP",
	TimestampDesc:   "TIMESTAMP_DESC",
	AuthorTitle:     "AUTHOR_TITLE",
	AuthorTitleDesc: "AUTHOR_TITLE_DESC",
	TitleAuthor:     "TITLE_AUTHOR",
	TitleAuthorDesc: "TITLE_AUTHOR_DESC",
}

func (o SortOrder) String() string {
	if o < 0 || int(o) >= len(sortOrderNames) {
		return "UNKNOWN"
	}
	return sortOrderNames[o]
}

// SortOrders lists every order in declaration order.
func SortOrders() []SortOrder {
	out := make([]SortOrder, len(sortOrderNames))
	for i := range out {
		out[i] = SortOrder(i)
	}
	return out
}

// ParseSortOrder looks an order up by its exact name.
func ParseSortOrder(name string) (SortOrder, bool) {
	for i, n := range sortOrderNames {
		if n == name {
			return SortOrder(i), true
		}
	}
	return DefaultSortOrder, false
}

// SortOrderFromName is ParseSortOrder falling back to DefaultSortOrder.
func SortOrderFromName(name string) SortOrder {
	o, _ := ParseSortOrder(name)
	return o
}

// Descending reports whether the primary keys run in reverse.
func (o SortOrder) Descending() bool {
	return o%2 == 1
}

// Compare orders a before b (negative), after b (positive) or neither.
// Absent text keys sort after present ones in both directions, and the file
// name is always the final ascending tie-break so paired orders stay stable
// for otherwise equal entries.
func (o SortOrder) Compare(a, b *Entry) int {
	if a == nil || b == nil {
		return 0
	}
	sign := 1
	if o.Descending() {
		sign = -1
	}
	var c int
	switch o {
	case FileName, FileNameDesc:
		c = sign * compareText(a.DisplayName(), b.DisplayName())
	case Timestamp, TimestampDesc:
		c = sign * cmp.Compare(a.CreateTime, b.CreateTime)
	case AuthorTitle, AuthorTitleDesc:
		c = cmp.Or(
			presentFirst(FormatAuthors(a.Authors), FormatAuthors(b.Authors), sign),
			presentFirst(a.Series, b.Series, sign),
			sign*cmp.Compare(a.EffectiveSeriesNumber(), b.EffectiveSeriesNumber()),
			presentFirst(a.Title, b.Title, sign),
		)
	case TitleAuthor, TitleAuthorDesc:
		c = cmp.Or(
			presentFirst(a.Title, b.Title, sign),
			presentFirst(a.Series, b.Series, sign),
			sign*cmp.Compare(a.EffectiveSeriesNumber(), b.EffectiveSeriesNumber()),
			presentFirst(FormatAuthors(a.Authors), FormatAuthors(b.Authors), sign),
		)
	}
	if c != 0 {
		return c
	}
	return compareText(a.FileName, b.FileName)
}

// presentFirst compares two optional strings in the given direction. ""
// sorts last whatever the direction.
func presentFirst(x, y string, sign int) int {
	switch {
	case x == "" && y == "":
		return 0
	case x == "":
		return 1
	case y == "":
		return -1
	}
	return sign * compareText(x, y)
}

// A Collator keeps scratch buffers, so each comparison borrows one.
var collators = sync.Pool{
	New: func() any { return collate.New(language.Und, collate.IgnoreCase) },
}

// compareText collates x and y ignoring case, then falls back to byte order
// so that distinct strings never compare equal.
func compareText(x, y string) int {
	c := collators.Get().(*collate.Collator)
	r := c.CompareString(x, y)
	collators.Put(c)
	if r != 0 {
		return r
	}
	return strings.Compare(x, y)
}

// Sort replaces the directory and file lists with independently sorted
// copies. The two lists are never merged.
func (e *Entry) Sort(order SortOrder) {
	if e.dirs != nil {
		dirs := slices.Clone(e.dirs)
		slices.SortStableFunc(dirs, order.Compare)
		e.dirs = dirs
	}
	if e.files != nil {
		files := slices.Clone(e.files)
		slices.SortStableFunc(files, order.Compare)
		e.files = files
	}
}
