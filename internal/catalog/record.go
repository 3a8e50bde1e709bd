package catalog

import (
	"github.com/efermi/coolreader/api"
	"github.com/efermi/coolreader/internal/format"
)

// ToRecord converts e and its subtree to the wire form. The ancestors are
// encoded as a chain of records without children.
func ToRecord(e *Entry) api.EntryRecord {
	r := scalarRecord(e)
	if e.parent != nil {
		p := ancestorRecord(e.parent)
		r.Parent = &p
	}
	r.Files = childRecords(e.files)
	r.Dirs = childRecords(e.dirs)
	return r
}

func ancestorRecord(e *Entry) api.EntryRecord {
	r := scalarRecord(e)
	if e.parent != nil {
		p := ancestorRecord(e.parent)
		r.Parent = &p
	}
	return r
}

// childRecords skips the parent of each child; it is implied by nesting.
func childRecords(list []*Entry) []api.EntryRecord {
	if len(list) == 0 {
		return nil
	}
	out := make([]api.EntryRecord, 0, len(list))
	for _, c := range list {
		r := scalarRecord(c)
		r.Files = childRecords(c.files)
		r.Dirs = childRecords(c.dirs)
		out = append(out, r)
	}
	return out
}

func scalarRecord(e *Entry) api.EntryRecord {
	r := api.EntryRecord{
		Title:               e.Title,
		Authors:             e.Authors,
		Series:              e.Series,
		SeriesNumber:        e.SeriesNumber,
		Genres:              e.Genres,
		Path:                e.Path,
		FileName:            e.FileName,
		PathName:            e.Pathname,
		ArcName:             e.ArcName,
		Language:            e.Language,
		Description:         e.Description,
		Username:            e.Username,
		Password:            e.Password,
		Size:                e.Size,
		ArcSize:             e.ArcSize,
		CreateTime:          e.CreateTime,
		LastAccessTime:      e.LastAccessTime,
		Flags:               uint32(e.Flags),
		IsArchive:           e.IsArchive,
		IsDirectory:         e.IsDirectory,
		IsListed:            e.IsListed,
		IsScanned:           e.IsScanned,
		CRC32:               e.CRC32,
		DOMVersion:          e.DOMVersion,
		BlockRenderingFlags: e.BlockRenderingFlags,
		Extra:               payloadRecord(e.Payload),
	}
	if e.ID != nil {
		id := *e.ID
		r.ID = &id
	}
	if e.Format != format.None {
		r.Format = e.Format.String()
	}
	return r
}

func payloadRecord(p Payload) *api.PayloadRecord {
	switch v := p.(type) {
	case GenreStats:
		return &api.PayloadRecord{Kind: api.PayloadGenre, Genre: v.Packed()}
	case *FeedEntry:
		if v == nil {
			return nil
		}
		f := &api.FeedRecord{ID: v.ID, Title: v.Title, Authors: v.Authors, Summary: v.Summary}
		for _, l := range v.Links {
			f.Links = append(f.Links, api.LinkRecord(l))
		}
		return &api.PayloadRecord{Kind: api.PayloadFeed, Feed: f}
	case *StoreBook:
		if v == nil {
			return nil
		}
		s := api.StoreRecord(*v)
		return &api.PayloadRecord{Kind: api.PayloadStore, Store: &s}
	}
	return nil
}

// FromRecord rebuilds an entry tree from its wire form. When r carries a
// parent chain the returned entry is linked to a fresh ancestor chain; the
// ancestors do not list it as a child.
func FromRecord(r api.EntryRecord) *Entry {
	e := entryFromScalars(r)
	for _, c := range r.Files {
		child := FromRecord(c)
		child.parent = e
		e.files = append(e.files, child)
	}
	for _, c := range r.Dirs {
		child := FromRecord(c)
		child.parent = e
		e.dirs = append(e.dirs, child)
	}
	if r.Parent != nil {
		e.parent = FromRecord(*r.Parent)
	}
	return e
}

func entryFromScalars(r api.EntryRecord) *Entry {
	e := &Entry{
		Title:               r.Title,
		Authors:             r.Authors,
		Series:              r.Series,
		SeriesNumber:        r.SeriesNumber,
		Genres:              r.Genres,
		Path:                r.Path,
		FileName:            r.FileName,
		Pathname:            r.PathName,
		ArcName:             r.ArcName,
		Language:            r.Language,
		Description:         r.Description,
		Username:            r.Username,
		Password:            r.Password,
		Format:              format.Parse(r.Format),
		Size:                r.Size,
		ArcSize:             r.ArcSize,
		CreateTime:          r.CreateTime,
		LastAccessTime:      r.LastAccessTime,
		Flags:               StateFlags(r.Flags),
		IsArchive:           r.IsArchive,
		IsDirectory:         r.IsDirectory,
		IsListed:            r.IsListed,
		IsScanned:           r.IsScanned,
		CRC32:               r.CRC32,
		DOMVersion:          r.DOMVersion,
		BlockRenderingFlags: r.BlockRenderingFlags,
		Payload:             payloadFromRecord(r.Extra),
	}
	if r.ID != nil {
		id := *r.ID
		e.ID = &id
	}
	return e
}

func payloadFromRecord(r *api.PayloadRecord) Payload {
	if r == nil {
		return nil
	}
	switch r.Kind {
	case api.PayloadGenre:
		return UnpackGenreStats(r.Genre)
	case api.PayloadFeed:
		if r.Feed == nil {
			return nil
		}
		f := &FeedEntry{ID: r.Feed.ID, Title: r.Feed.Title, Authors: r.Feed.Authors, Summary: r.Feed.Summary}
		for _, l := range r.Feed.Links {
			f.Links = append(f.Links, FeedLink(l))
		}
		return f
	case api.PayloadStore:
		if r.Store == nil {
			return nil
		}
		b := StoreBook(*r.Store)
		return &b
	}
	return nil
}
