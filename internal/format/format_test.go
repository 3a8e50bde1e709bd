package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByExtension(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"book.fb2", FB2},
		{"/sdcard/Books/Book.FB2", FB2},
		{"notes.txt", TXT},
		{"novel.epub", EPUB},
		{"page.xhtml", HTML},
		{"story.mobi", MOBI},
		{"README.md", MD},
		{"archive.zip", None},
		{"noext", None},
		{"", None},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ByExtension(tt.name), "ByExtension(%q)", tt.name)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for f := None; f <= MD; f++ {
		assert.Equal(t, f, Parse(f.String()))
	}
	assert.Equal(t, None, Parse("unknown"))
	assert.Equal(t, EPUB, Parse("epub"))
}

func TestStringOutOfRange(t *testing.T) {
	assert.Equal(t, "NONE", Format(-1).String())
	assert.Equal(t, "NONE", Format(999).String())
}
