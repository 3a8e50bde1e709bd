// Package format classifies document files by name.
package format

import (
	"path/filepath"
	"strings"
)

// Format identifies a document format. The zero value means the file is not
// a recognized document.
type Format int

const (
	None Format = iota
	FB2
	FB3
	TXT
	RTF
	EPUB
	HTML
	CHM
	DOC
	DOCX
	ODT
	PDB
	MOBI
	MD
)

var names = [...]string{
	None: "NONE",
	FB2:  "FB2",
	FB3:  "FB3",
	TXT:  "TXT",
	RTF:  "RTF",
	EPUB: "EPUB",
	HTML: "HTML",
	CHM:  "CHM",
	DOC:  "DOC",
	DOCX: "DOCX",
	ODT:  "ODT",
	PDB:  "PDB",
	MOBI: "MOBI",
	MD:   "MD",
}

// extensions maps lower-case extensions (with dot) to formats.
// Compound extensions like ".fb2.zip" are handled by the archive index, not here.
var extensions = map[string]Format{
	".fb2":   FB2,
	".fb3":   FB3,
	".txt":   TXT,
	".tcr":   TXT,
	".rtf":   RTF,
	".epub":  EPUB,
	".htm":   HTML,
	".html":  HTML,
	".shtml": HTML,
	".xhtml": HTML,
	".chm":   CHM,
	".doc":   DOC,
	".docx":  DOCX,
	".odt":   ODT,
	".pdb":   PDB,
	".prc":   MOBI,
	".mobi":  MOBI,
	".azw":   MOBI,
	".md":    MD,
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(names) {
		return names[None]
	}
	return names[f]
}

// Parse returns the format for a name produced by String.
func Parse(name string) Format {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Format(i)
		}
	}
	return None
}

// ByExtension returns the format implied by the file name's extension.
func ByExtension(name string) Format {
	return extensions[strings.ToLower(filepath.Ext(name))]
}

// Classifier adapts ByExtension to the catalog's classifier interface.
type Classifier struct{}

func (Classifier) Classify(name string) Format {
	return ByExtension(name)
}
