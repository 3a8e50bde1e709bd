package catalog

import "slices"

// StructurallyEqual compares every field of a and b except genres, plus both
// child collections recursively. Ancestors are not compared. Use it to tell
// whether a subtree actually changed after a refresh.
func StructurallyEqual(a, b *Entry) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !sameScalars(a, b) ||
		a.IsListed != b.IsListed ||
		a.IsScanned != b.IsScanned ||
		!payloadEqual(a.Payload, b.Payload) {
		return false
	}
	return slices.EqualFunc(a.dirs, b.dirs, StructurallyEqual) &&
		slices.EqualFunc(a.files, b.files, StructurallyEqual)
}

// FingerprintEqual reports whether a and b describe the same book: equal
// content identity, ignoring reading state, rating, timestamps, genres and
// the tree around them. Rescans use it to decide whether only metadata
// needs updating.
func FingerprintEqual(a, b *Entry) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.Kind() == b.Kind() &&
		a.Title == b.Title &&
		a.Authors == b.Authors &&
		a.Series == b.Series &&
		a.EffectiveSeriesNumber() == b.EffectiveSeriesNumber() &&
		a.Language == b.Language &&
		a.Description == b.Description &&
		a.Format == b.Format &&
		a.FileName == b.FileName &&
		a.Size == b.Size &&
		a.ArcSize == b.ArcSize &&
		a.CRC32 == b.CRC32
}

func sameScalars(a, b *Entry) bool {
	return a.Kind() == b.Kind() &&
		idEqual(a.ID, b.ID) &&
		a.Title == b.Title &&
		a.Authors == b.Authors &&
		a.Series == b.Series &&
		a.EffectiveSeriesNumber() == b.EffectiveSeriesNumber() &&
		a.Path == b.Path &&
		a.FileName == b.FileName &&
		a.Pathname == b.Pathname &&
		a.ArcName == b.ArcName &&
		a.Language == b.Language &&
		a.Description == b.Description &&
		a.Username == b.Username &&
		a.Password == b.Password &&
		a.Format == b.Format &&
		a.Size == b.Size &&
		a.ArcSize == b.ArcSize &&
		a.CreateTime == b.CreateTime &&
		a.LastAccessTime == b.LastAccessTime &&
		a.Flags == b.Flags &&
		a.CRC32 == b.CRC32 &&
		a.DOMVersion == b.DOMVersion &&
		a.BlockRenderingFlags == b.BlockRenderingFlags
}

func idEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func payloadEqual(a, b Payload) bool {
	switch pa := a.(type) {
	case nil:
		return b == nil
	case GenreStats:
		pb, ok := b.(GenreStats)
		return ok && pa == pb
	case *FeedEntry:
		pb, ok := b.(*FeedEntry)
		if !ok || pa == nil || pb == nil {
			return ok && pa == pb
		}
		return pa.ID == pb.ID && pa.Title == pb.Title && pa.Authors == pb.Authors &&
			pa.Summary == pb.Summary && slices.Equal(pa.Links, pb.Links)
	case *StoreBook:
		pb, ok := b.(*StoreBook)
		if !ok || pa == nil || pb == nil {
			return ok && pa == pb
		}
		return *pa == *pb
	}
	return false
}
