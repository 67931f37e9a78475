package loader

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("numeric coercion", func(t *testing.T) {
		table, err := Parse(strings.NewReader("party,votes\nA,5000\nB,3000\n"))
		require.NoError(t, err)

		assert.Equal(t, []string{"party", "votes"}, table.Columns())
		require.Equal(t, 2, table.Len())

		votes, ok := table.Float(0, "votes")
		require.True(t, ok)
		assert.Equal(t, 5000.0, votes)

		party, ok := table.Value(0, "party")
		require.True(t, ok)
		assert.Equal(t, "A", party, "Non-numeric cells stay strings")
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		table, err := Parse(strings.NewReader("share\n 0.25 \n"))
		require.NoError(t, err)

		v, ok := table.Float(0, "share")
		require.True(t, ok)
		assert.Equal(t, 0.25, v)
	})

	t.Run("header only yields empty table", func(t *testing.T) {
		table, err := Parse(strings.NewReader("share\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("missing header", func(t *testing.T) {
		_, err := Parse(strings.NewReader(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing header row")
	})

	t.Run("empty header column", func(t *testing.T) {
		_, err := Parse(strings.NewReader("party,,votes\nA,x,1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})

	t.Run("duplicate header column", func(t *testing.T) {
		_, err := Parse(strings.NewReader("votes,votes\n1,2\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate header column")
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := Parse(strings.NewReader("party,votes\nA,1,extra\n"))
		assert.Error(t, err, "csv reader rejects rows with the wrong field count")
	})
}

func TestLoad(t *testing.T) {
	content := "share\n0.5\n0.3\n0.2\n"

	t.Run("plain csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shares.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		table, raw, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, table.Len())
		assert.Equal(t, []byte(content), raw, "Raw bytes back the dataset hash")
	})

	t.Run("gzip csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shares.csv.gz")
		file, err := os.Create(path)
		require.NoError(t, err)

		gz := gzip.NewWriter(file)
		_, err = gz.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, gz.Close())
		require.NoError(t, file.Close())

		table, raw, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, table.Len())

		v, ok := table.Float(0, "share")
		require.True(t, ok)
		assert.Equal(t, 0.5, v)

		// The hash input is the compressed file, not the decoded stream
		assert.NotEqual(t, []byte(content), raw)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := Load("/nonexistent/data.csv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read")
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.csv.gz")
		require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

		_, _, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decompress")
	})
}
