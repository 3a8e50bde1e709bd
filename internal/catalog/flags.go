package catalog

// StateFlags packs per-entry state into one 32-bit word.
//
// Layout:
//
//	bits 0..15   render overrides (only bits 0..2 are assigned)
//	bits 16..19  reading state
//	bits 20..23  rating (0..5 used)
//	bits 24..25  info type
//	bits 26..29  profile id
//
// Set masks the value to the field width; out-of-range input is truncated,
// not rejected.
type StateFlags uint32

// Field is one bit range inside StateFlags.
type Field struct {
	Shift uint
	Mask  uint32
}

var (
	ReadingStateField = Field{Shift: 16, Mask: 0x0F}
	RatingField       = Field{Shift: 20, Mask: 0x0F}
	InfoTypeField     = Field{Shift: 24, Mask: 0x03}
	ProfileIDField    = Field{Shift: 26, Mask: 0x0F}
)

// Render override bits.
const (
	DontUseDocumentStyles StateFlags = 1 << iota
	DontReflowTxtFiles
	UseDocumentFonts
)

// Get returns the value stored in f.
func (s StateFlags) Get(f Field) int {
	return int((uint32(s) >> f.Shift) & f.Mask)
}

// Set stores v&f.Mask in f and reports whether the word changed.
func (s *StateFlags) Set(f Field, v int) bool {
	old := *s
	*s = StateFlags(uint32(*s)&^(f.Mask<<f.Shift) | (uint32(v)&f.Mask)<<f.Shift)
	return *s != old
}

// Has reports whether every bit of flag is set.
func (s StateFlags) Has(flag StateFlags) bool {
	return s&flag == flag && flag != 0
}

// SetFlag turns the bits of flag on or off.
func (s *StateFlags) SetFlag(flag StateFlags, on bool) {
	if on {
		*s |= flag
	} else {
		*s &^= flag
	}
}

// ReadingState is the reading progress of a book.
type ReadingState int

const (
	StateNew ReadingState = iota
	StateToRead
	StateReading
	StateFinished
)

func (r ReadingState) String() string {
	switch r {
	case StateNew:
		return "new"
	case StateToRead:
		return "to-read"
	case StateReading:
		return "reading"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Rating values. 0 means not rated.
const (
	NotRated  = 0
	MaxRating = 5
)

// InfoType marks directories with a special role in the library.
type InfoType int

const (
	TypeNotSet InfoType = iota
	TypeFSRoot
	TypeDownloadDir
)
