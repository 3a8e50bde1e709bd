package api

// EntryRecord is the wire form of one catalog entry. Field order follows the
// entry model and must stay stable for existing consumers.
type EntryRecord struct {
	ID           *int64 `json:"id,omitempty"`
	Title        string `json:"title,omitempty"`
	Authors      string `json:"authors,omitempty"` // '|' delimited
	Series       string `json:"series,omitempty"`
	SeriesNumber int    `json:"series_number,omitempty"`
	Genres       string `json:"genres,omitempty"` // '|' delimited
	Path         string `json:"path,omitempty"`
	FileName     string `json:"filename,omitempty"`
	PathName     string `json:"pathname"`
	ArcName      string `json:"arcname,omitempty"`
	Language     string `json:"language,omitempty"`
	Description  string `json:"description,omitempty"`
	Username     string `json:"username,omitempty"`
	Password     string `json:"password,omitempty"`
	// Format is the document format name, e.g. "FB2".
	Format         string `json:"format,omitempty"`
	Size           int64  `json:"size,omitempty"`
	ArcSize        int64  `json:"arcsize,omitempty"`
	CreateTime     int64  `json:"create_time,omitempty"`      // unix millis
	LastAccessTime int64  `json:"last_access_time,omitempty"` // unix millis
	Flags          uint32 `json:"flags,omitempty"`
	IsArchive      bool   `json:"is_archive,omitempty"`
	IsDirectory    bool   `json:"is_directory,omitempty"`
	IsListed       bool   `json:"is_listed,omitempty"`
	IsScanned      bool   `json:"is_scanned,omitempty"`
	CRC32          uint32 `json:"crc32,omitempty"`

	DOMVersion          int `json:"dom_version,omitempty"`
	BlockRenderingFlags int `json:"block_rendering_flags,omitempty"`

	// Parent is the ancestor chain. Parent records never carry children.
	Parent *EntryRecord   `json:"parent,omitempty"`
	Files  []EntryRecord  `json:"files,omitempty"`
	Dirs   []EntryRecord  `json:"dirs,omitempty"`
	Extra  *PayloadRecord `json:"payload,omitempty"`
}

// Payload kinds.
const (
	PayloadGenre = "genre"
	PayloadFeed  = "feed"
	PayloadStore = "store"
)

// PayloadRecord carries exactly one payload, selected by Kind.
type PayloadRecord struct {
	Kind string `json:"kind"`
	// Genre is the packed genre aggregate (bit 31 nested, low 24 bits count).
	Genre uint32       `json:"genre,omitempty"`
	Feed  *FeedRecord  `json:"feed,omitempty"`
	Store *StoreRecord `json:"store,omitempty"`
}

type FeedRecord struct {
	ID      string       `json:"id,omitempty"`
	Title   string       `json:"title,omitempty"`
	Authors string       `json:"authors,omitempty"`
	Summary string       `json:"summary,omitempty"`
	Links   []LinkRecord `json:"links,omitempty"`
}

type LinkRecord struct {
	Href  string `json:"href"`
	Type  string `json:"type,omitempty"`
	Rel   string `json:"rel,omitempty"`
	Title string `json:"title,omitempty"`
}

type StoreRecord struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Authors     string `json:"authors,omitempty"`
	Price       string `json:"price,omitempty"`
	DownloadURL string `json:"download_url,omitempty"`
}
