// Package catalog models the entries of a hierarchical document library:
// plain files and directories, archive containers and their members, and
// virtual nodes such as recents, search results and author groupings.
//
// An Entry owns its child directories and files. The parent link is a plain
// back-pointer and never owns anything. Entries are not safe for concurrent
// mutation; one scan pipeline is expected to own all writes.
package catalog

import (
	"github.com/efermi/coolreader/internal/format"
	"github.com/efermi/coolreader/internal/logging"
	"go.uber.org/zap"
)

// Defaults stamped on freshly created document entries.
const (
	DefaultDOMVersion          = 20200824
	DefaultBlockRenderingFlags = 0x7FFFFFFF
)

// Kind is the storage kind of an entry, derived from IsArchive and IsDirectory.
type Kind int

const (
	KindFile          Kind = iota // plain file
	KindDir                       // plain directory (including virtual nodes)
	KindArchive                   // archive container, listed like a directory
	KindArchiveMember             // document inside an archive
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindArchive:
		return "archive"
	case KindArchiveMember:
		return "archive-member"
	}
	return "unknown"
}

// Entry is one node of the catalog tree.
type Entry struct {
	ID             *int64 // database id, nil when not persisted
	Title          string
	Authors        string // '|' delimited
	Series         string
	SeriesNumber   int
	Genres         string // genre codes, '|' delimited
	Path           string // directory containing the file
	FileName       string
	Pathname       string // full path, or member path for archive members
	ArcName        string // archive path for archive-backed entries
	Language       string
	Description    string
	Username       string // remote catalogs only
	Password       string // remote catalogs only
	Format         format.Format
	Size           int64
	ArcSize        int64
	CreateTime     int64 // unix millis
	LastAccessTime int64 // unix millis
	Flags          StateFlags
	IsArchive      bool
	IsDirectory    bool
	IsListed       bool
	IsScanned      bool
	CRC32          uint32

	DOMVersion          int
	BlockRenderingFlags int

	Payload Payload

	parent *Entry
	files  []*Entry
	dirs   []*Entry
}

func lg() *zap.Logger {
	return logging.Named("catalog")
}

// NewEntry returns a bare entry with renderer defaults applied.
func NewEntry() *Entry {
	return &Entry{
		DOMVersion:          DefaultDOMVersion,
		BlockRenderingFlags: DefaultBlockRenderingFlags,
	}
}

// NewVirtual returns a virtual directory of the given kind. param is used
// only by parametrized kinds.
func NewVirtual(kind VirtualKind, param, title string) *Entry {
	e := NewEntry()
	e.IsDirectory = true
	e.Pathname = kind.Path(param)
	e.FileName = title
	e.Title = title
	return e
}

// Copy returns a shallow copy without parent and children.
func (e *Entry) Copy() *Entry {
	c := &Entry{}
	c.Assign(e)
	c.Payload = e.Payload
	return c
}

// Assign copies all scalar fields of v onto e. Parent, children, the
// listed/scanned markers and the payload are left alone.
func (e *Entry) Assign(v *Entry) {
	if v.ID != nil {
		id := *v.ID
		e.ID = &id
	} else {
		e.ID = nil
	}
	e.Title = v.Title
	e.Authors = v.Authors
	e.Series = v.Series
	e.SeriesNumber = v.SeriesNumber
	e.Genres = v.Genres
	e.Path = v.Path
	e.FileName = v.FileName
	e.Pathname = v.Pathname
	e.ArcName = v.ArcName
	e.Language = v.Language
	e.Description = v.Description
	e.Username = v.Username
	e.Password = v.Password
	e.Format = v.Format
	e.Size = v.Size
	e.ArcSize = v.ArcSize
	e.CreateTime = v.CreateTime
	e.LastAccessTime = v.LastAccessTime
	e.Flags = v.Flags
	e.IsArchive = v.IsArchive
	e.IsDirectory = v.IsDirectory
	e.CRC32 = v.CRC32
	e.DOMVersion = v.DOMVersion
	e.BlockRenderingFlags = v.BlockRenderingFlags
}

// Kind derives the storage kind.
func (e *Entry) Kind() Kind {
	switch {
	case e.IsArchive && e.IsDirectory:
		return KindArchive
	case e.IsArchive:
		return KindArchiveMember
	case e.IsDirectory:
		return KindDir
	}
	return KindFile
}

// Parent returns the containing entry, or nil.
func (e *Entry) Parent() *Entry {
	return e.parent
}

// SetParent sets the back-pointer without touching either child list.
func (e *Entry) SetParent(p *Entry) {
	e.parent = p
}

// CanonicalPath returns "<archive>@/<member>" for archive-backed entries and
// the plain path otherwise.
func (e *Entry) CanonicalPath() string {
	return JoinComposite(e.Pathname, e.ArcName)
}

// BasePath returns the archive path for archive-backed entries, else the path.
func (e *Entry) BasePath() string {
	if e.ArcName != "" {
		return e.ArcName
	}
	return e.Pathname
}

// ArchiveName returns the archive path, or "" for entries outside archives.
func (e *Entry) ArchiveName() string {
	return e.ArcName
}

// ArchiveItemName returns the member path for archive members, else "".
func (e *Entry) ArchiveItemName() string {
	if e.IsArchive && !e.IsDirectory {
		return e.Pathname
	}
	return ""
}

// DisplayName is the archive's own file name for a single-document archive
// listed in a plain directory, and the file name otherwise.
func (e *Entry) DisplayName() string {
	singleFileArchive := e.IsArchive && e.parent != nil && !e.parent.IsArchive && e.ArcName != ""
	if singleFileArchive {
		return baseName(e.ArcName)
	}
	return e.FileName
}

// TitleOrFileName returns the title, or "" when only authors or series are
// known, or the file name when nothing is known.
func (e *Entry) TitleOrFileName() string {
	switch {
	case e.Title != "":
		return e.Title
	case e.Authors != "", e.Series != "":
		return ""
	}
	return e.FileName
}

// EffectiveSeriesNumber returns the series number, or 0 without a series.
func (e *Entry) EffectiveSeriesNumber() int {
	if e.Series == "" {
		return 0
	}
	return e.SeriesNumber
}

func (e *Entry) String() string {
	return e.Pathname
}

// Setters report whether the stored value changed.

func (e *Entry) SetTitle(v string) bool {
	if e.Title == v {
		return false
	}
	e.Title = v
	return true
}

func (e *Entry) SetAuthors(v string) bool {
	if e.Authors == v {
		return false
	}
	e.Authors = v
	return true
}

func (e *Entry) SetSeriesName(v string) bool {
	if e.Series == v {
		return false
	}
	e.Series = v
	return true
}

func (e *Entry) SetSeriesNumber(v int) bool {
	if e.SeriesNumber == v {
		return false
	}
	e.SeriesNumber = v
	return true
}

func (e *Entry) ReadingState() ReadingState {
	return ReadingState(e.Flags.Get(ReadingStateField))
}

func (e *Entry) SetReadingState(s ReadingState) bool {
	return e.Flags.Set(ReadingStateField, int(s))
}

func (e *Entry) Rating() int {
	return e.Flags.Get(RatingField)
}

func (e *Entry) SetRating(r int) bool {
	return e.Flags.Set(RatingField, r)
}

func (e *Entry) InfoType() InfoType {
	return InfoType(e.Flags.Get(InfoTypeField))
}

func (e *Entry) SetInfoType(t InfoType) bool {
	return e.Flags.Set(InfoTypeField, int(t))
}

func (e *Entry) ProfileID() int {
	return e.Flags.Get(ProfileIDField)
}

func (e *Entry) SetProfileID(id int) bool {
	return e.Flags.Set(ProfileIDField, id)
}

// Flag reports a render override bit.
func (e *Entry) Flag(flag StateFlags) bool {
	return e.Flags.Has(flag)
}

func (e *Entry) SetFlag(flag StateFlags, on bool) {
	e.Flags.SetFlag(flag, on)
}

// SetFileProperties copies the user-visible book properties of other
// (title, authors, series, series number, reading state, rating).
func (e *Entry) SetFileProperties(other *Entry) bool {
	modified := e.SetTitle(other.Title)
	modified = e.SetAuthors(other.Authors) || modified
	modified = e.SetSeriesName(other.Series) || modified
	modified = e.SetSeriesNumber(other.EffectiveSeriesNumber()) || modified
	modified = e.SetReadingState(other.ReadingState()) || modified
	modified = e.SetRating(other.Rating()) || modified
	return modified
}
