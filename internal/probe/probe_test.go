package probe

import (
	"hash/crc32"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ListSorted(t *testing.T) {
	p := Memory()
	for _, n := range []string{"/lib/c.txt", "/lib/a.txt", "/lib/b/x.txt"} {
		require.NoError(t, util.WriteFile(p, n, []byte(n), 0o644))
	}

	infos, err := p.List("/lib")
	require.NoError(t, err)
	var got []string
	for _, fi := range infos {
		got = append(got, fi.Name())
	}
	assert.Equal(t, []string{"a.txt", "b", "c.txt"}, got)
	assert.True(t, p.IsDir("/lib/b"))
	assert.False(t, p.IsDir("/lib/a.txt"))
	assert.False(t, p.IsDir("/nope"))
}

func TestFS_Checksum(t *testing.T) {
	p := Memory()
	data := []byte("The quick brown fox")
	require.NoError(t, util.WriteFile(p, "/f.txt", data, 0o644))

	sum, err := p.Checksum("/f.txt")
	require.NoError(t, err)
	assert.Equal(t, crc32.ChecksumIEEE(data), sum)

	_, err = p.Checksum("/missing")
	assert.Error(t, err)
}

func TestFS_ReadOnlyRemove(t *testing.T) {
	p := Memory()
	require.NoError(t, util.WriteFile(p, "/f.txt", []byte("x"), 0o644))

	assert.Error(t, p.ReadOnly().Remove("/f.txt"))
	_, err := p.Stat("/f.txt")
	require.NoError(t, err)

	require.NoError(t, p.Remove("/f.txt"))
	_, err = p.Stat("/f.txt")
	assert.Error(t, err)
}
