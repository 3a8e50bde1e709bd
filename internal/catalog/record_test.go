package catalog

import (
	"encoding/json"
	"testing"

	"github.com/efermi/coolreader/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_RoundTrip(t *testing.T) {
	root := NewVirtual(LibraryRoot, "", "Library")
	lib := dirEntry("/lib")
	lib.IsListed = true
	root.AddDir(lib)

	b := sampleBook()
	id := int64(17)
	b.ID = &id
	b.SetReadingState(StateReading)
	b.SetFlag(UseDocumentFonts, true)
	sub := dirEntry("/lib/sub")
	sub.AddFile(fileEntry("/lib/sub/x.txt"))
	lib.AddItems([]*Entry{b, sub, fileEntry("/lib/z.txt")})

	raw, err := json.Marshal(ToRecord(lib))
	require.NoError(t, err)
	var rec api.EntryRecord
	require.NoError(t, json.Unmarshal(raw, &rec))

	got := FromRecord(rec)
	assert.True(t, StructurallyEqual(lib, got))
	assert.Equal(t, b.Genres, got.File(0).Genres)
	assert.Equal(t, []string{"dune.fb2", "z.txt"}, names(got.Files()))
	require.NotNil(t, got.Parent())
	assert.True(t, got.Parent().IsRootDir())
	assert.True(t, got.Parent().IsEmpty())
	assert.Same(t, got, got.File(0).Parent())
}

func TestRecord_Payloads(t *testing.T) {
	cases := []Payload{
		GenreStats{BookCount: 12, IncludesChildren: true},
		&FeedEntry{ID: "urn:1", Title: "T", Links: []FeedLink{{Href: "/x", Rel: "http://opds-spec.org/acquisition"}}},
		&StoreBook{ID: "9", Title: "B", Price: "1.99"},
	}
	for _, p := range cases {
		e := NewVirtual(GenreNode, "g", "G")
		e.Payload = p
		got := FromRecord(ToRecord(e))
		assert.True(t, payloadEqual(p, got.Payload), "%T", p)
	}
}
