// Package group builds the virtual "books by ..." roots of a library from a
// scanned catalog tree.
package group

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring"
	"github.com/efermi/coolreader/internal/catalog"
)

// Dimension is one way of grouping books.
type Dimension int

const (
	Authors Dimension = iota
	Series
	Genres
	Rating
	ToRead
	Reading
	Finished
	Titles
)

var dimensions = [...]struct {
	name  string
	root  catalog.VirtualKind
	leaf  catalog.VirtualKind // NotVirtual for flat roots
	title string
}{
	Authors:  {"authors", catalog.AuthorsRoot, catalog.AuthorNode, "Books by author"},
	Series:   {"series", catalog.SeriesRoot, catalog.SeriesNode, "Books by series"},
	Genres:   {"genres", catalog.GenresRoot, catalog.GenreNode, "Books by genre"},
	Rating:   {"rating", catalog.RatingRoot, catalog.NotVirtual, "Books by rating"},
	ToRead:   {"to-read", catalog.StateToReadRoot, catalog.NotVirtual, "To read"},
	Reading:  {"reading", catalog.StateReadingRoot, catalog.NotVirtual, "Reading"},
	Finished: {"finished", catalog.StateFinishedRoot, catalog.NotVirtual, "Finished"},
	Titles:   {"titles", catalog.TitlesRoot, catalog.TitleGroup, "Books by title"},
}

func (d Dimension) String() string {
	if d < 0 || int(d) >= len(dimensions) {
		return "unknown"
	}
	return dimensions[d].name
}

// ParseDimension accepts the names produced by String.
func ParseDimension(name string) (Dimension, bool) {
	for i, dim := range dimensions {
		if strings.EqualFold(dim.name, name) {
			return Dimension(i), true
		}
	}
	return 0, false
}

// Dimensions lists every dimension.
func Dimensions() []Dimension {
	out := make([]Dimension, len(dimensions))
	for i := range out {
		out[i] = Dimension(i)
	}
	return out
}

// flat is the single key of dimensions without leaf directories.
const flat = ""

// Index maps grouping keys to sets of books. Book ids are positions in
// walk order.
type Index struct {
	books []*catalog.Entry
	keys  [len(dimensions)]map[string]*roaring.Bitmap
}

// Build indexes every document below root. Virtual subtrees are skipped.
func Build(root *catalog.Entry) *Index {
	x := &Index{}
	for i := range x.keys {
		x.keys[i] = make(map[string]*roaring.Bitmap)
	}
	root.Walk(func(e *catalog.Entry) bool {
		if e != root && e.IsSpecialDir() {
			return false
		}
		if !e.IsDirectory {
			x.add(e)
		}
		return true
	})
	return x
}

func (x *Index) add(e *catalog.Entry) {
	id := uint32(len(x.books))
	x.books = append(x.books, e)

	for _, a := range catalog.SplitList(e.Authors) {
		x.set(Authors, a, id)
	}
	if e.Series != "" {
		x.set(Series, e.Series, id)
	}
	for _, g := range catalog.SplitList(e.Genres) {
		x.set(Genres, g, id)
	}
	if r := e.Rating(); r > catalog.NotRated {
		x.set(Rating, strconv.Itoa(r), id)
	}
	switch e.ReadingState() {
	case catalog.StateToRead:
		x.set(ToRead, flat, id)
	case catalog.StateReading:
		x.set(Reading, flat, id)
	case catalog.StateFinished:
		x.set(Finished, flat, id)
	}
	if l := titleLetter(e); l != "" {
		x.set(Titles, l, id)
	}
}

func (x *Index) set(d Dimension, key string, id uint32) {
	bm, ok := x.keys[d][key]
	if !ok {
		bm = roaring.New()
		x.keys[d][key] = bm
	}
	bm.Add(id)
}

func titleLetter(e *catalog.Entry) string {
	t := strings.TrimSpace(e.Title)
	if t == "" {
		t = e.FileName
	}
	r, _ := utf8.DecodeRuneInString(t)
	switch {
	case r == utf8.RuneError:
		return ""
	case unicode.IsLetter(r):
		return string(unicode.ToUpper(r))
	case unicode.IsDigit(r):
		return "0-9"
	}
	return "#"
}

// Len returns the number of indexed books.
func (x *Index) Len() int {
	return len(x.books)
}

// Keys returns the keys of d in ascending order.
func (x *Index) Keys(d Dimension) []string {
	keys := make([]string, 0, len(x.keys[d]))
	for k := range x.keys[d] {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Count returns how many books carry key in d.
func (x *Index) Count(d Dimension, key string) uint64 {
	if bm, ok := x.keys[d][key]; ok {
		return bm.GetCardinality()
	}
	return 0
}

// Filter selects the books carrying Key in Dim. Flat dimensions ignore Key.
type Filter struct {
	Dim Dimension
	Key string
}

// Select returns the books matching every filter, in walk order. No
// filters selects nothing.
func (x *Index) Select(filters ...Filter) []*catalog.Entry {
	if len(filters) == 0 {
		return nil
	}
	var acc *roaring.Bitmap
	for _, f := range filters {
		key := f.Key
		if dimensions[f.Dim].leaf == catalog.NotVirtual && f.Dim != Rating {
			key = flat
		}
		bm, ok := x.keys[f.Dim][key]
		if !ok {
			return nil
		}
		if acc == nil {
			acc = bm.Clone()
		} else {
			acc.And(bm)
		}
	}
	return x.resolve(acc)
}

func (x *Index) resolve(bm *roaring.Bitmap) []*catalog.Entry {
	out := make([]*catalog.Entry, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, x.books[it.Next()])
	}
	return out
}

// Root builds the virtual root for d. Keyed dimensions get one listed leaf
// directory per key holding copies of its books; flat dimensions hold the
// copies directly. Books are sorted with order.
func (x *Index) Root(d Dimension, order catalog.SortOrder) *catalog.Entry {
	dim := dimensions[d]
	root := catalog.NewVirtual(dim.root, "", dim.title)

	switch {
	case d == Rating:
		// highest rating first, then order within a rating
		keys := x.Keys(Rating)
		var books []*catalog.Entry
		for i := len(keys) - 1; i >= 0; i-- {
			part := copies(x.resolve(x.keys[Rating][keys[i]]))
			sortBooks(part, order)
			books = append(books, part...)
		}
		root.SetItems(books)
	case dim.leaf == catalog.NotVirtual:
		var books []*catalog.Entry
		if bm, ok := x.keys[d][flat]; ok {
			books = copies(x.resolve(bm))
		}
		sortBooks(books, order)
		root.SetItems(books)
	default:
		var leaves []*catalog.Entry
		for i, key := range x.Keys(d) {
			bm := x.keys[d][key]
			leaf := catalog.NewVirtual(dim.leaf, key, key)
			id := int64(i + 1)
			leaf.ID = &id
			if d == Genres {
				leaf.Payload = catalog.GenreStats{BookCount: uint32(bm.GetCardinality())}
			}
			leaf.SetItems(copies(x.resolve(bm)))
			leaf.Sort(order)
			leaf.IsScanned = true
			leaves = append(leaves, leaf)
		}
		root.SetItems(leaves)
	}
	root.IsScanned = true
	return root
}

func copies(list []*catalog.Entry) []*catalog.Entry {
	out := make([]*catalog.Entry, len(list))
	for i, e := range list {
		out[i] = e.Copy()
	}
	return out
}

func sortBooks(list []*catalog.Entry, order catalog.SortOrder) {
	slices.SortStableFunc(list, order.Compare)
}
