package catalog

import "strings"

// Payload is extra data attached to virtual nodes. The implementations in
// this package are the only ones; the interface is sealed.
type Payload interface {
	payload()
}

// GenreStats is the aggregate carried by genre nodes.
type GenreStats struct {
	BookCount uint32 // books in the genre, at most 24 bits are kept when packed
	// IncludesChildren is set when BookCount covers nested genres too.
	IncludesChildren bool
}

const (
	genreIncludesChildMask uint32 = 0x80000000
	genreBookCountMask     uint32 = 0x00FFFFFF
)

// Packed returns the 32-bit form used by external genre catalogs.
func (g GenreStats) Packed() uint32 {
	v := g.BookCount & genreBookCountMask
	if g.IncludesChildren {
		v |= genreIncludesChildMask
	}
	return v
}

// UnpackGenreStats decodes the form produced by Packed.
func UnpackGenreStats(v uint32) GenreStats {
	return GenreStats{
		BookCount:        v & genreBookCountMask,
		IncludesChildren: v&genreIncludesChildMask != 0,
	}
}

// FeedLink is one link of a remote-catalog feed entry.
type FeedLink struct {
	Href  string
	Type  string
	Rel   string
	Title string
}

const acquisitionRel = "http://opds-spec.org/acquisition"

// IsAcquisition reports whether the link downloads a document.
func (l FeedLink) IsAcquisition() bool {
	return strings.HasPrefix(l.Rel, acquisitionRel)
}

// acquisitionPreference ranks document MIME types, best first.
var acquisitionPreference = []string{
	"application/fb2+zip",
	"application/fb2",
	"application/x-fictionbook+xml",
	"application/epub+zip",
	"application/x-mobipocket-ebook",
	"application/rtf",
	"text/html",
	"text/plain",
}

// FeedEntry describes an entry of a remote-catalog feed.
type FeedEntry struct {
	ID      string
	Title   string
	Authors string
	Summary string
	Links   []FeedLink
}

// BestAcquisitionLink picks the acquisition link with the most preferred
// MIME type, falling back to the first acquisition link. It returns nil when
// the entry is a navigation entry (no acquisition links).
func (f *FeedEntry) BestAcquisitionLink() *FeedLink {
	if f == nil {
		return nil
	}
	var first *FeedLink
	bestRank := len(acquisitionPreference)
	var best *FeedLink
	for i := range f.Links {
		l := &f.Links[i]
		if !l.IsAcquisition() {
			continue
		}
		if first == nil {
			first = l
		}
		for rank, typ := range acquisitionPreference {
			if rank < bestRank && strings.EqualFold(l.Type, typ) {
				best, bestRank = l, rank
				break
			}
		}
	}
	if best != nil {
		return best
	}
	return first
}

// StoreBook describes a book offered by an online-catalog plugin.
type StoreBook struct {
	ID          string
	Title       string
	Authors     string
	Price       string
	DownloadURL string
}

func (GenreStats) payload() {}
func (*FeedEntry) payload() {}
func (*StoreBook) payload() {}
