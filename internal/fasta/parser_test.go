package fasta

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFASTA = `>region1~100:250~+ upstream of locus
ACGTACGTACGTACGT
acgtacgt
>region2~300:350~-
TTTTGGGG
`

func TestParser_Records(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(testFASTA))

	rec, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "region1~100:250~+", rec.ID)
	assert.Equal(t, "upstream of locus", rec.Description)
	assert.Equal(t, "ACGTACGTACGTACGTacgtacgt", string(rec.Seq))

	rec, err = p.Next()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "region2~300:350~-", rec.ID)
	assert.Empty(t, rec.Description)
	assert.Equal(t, "TTTTGGGG", string(rec.Seq))

	// EOF is stable across repeated calls.
	rec, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
	rec, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParser_BlankLinesAndCRLF(t *testing.T) {
	in := ">a\r\nACGT\r\n\r\n>b\r\nTTTT\r\n"
	p := NewParserFromReader(strings.NewReader(in))

	rec, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", rec.ID)
	assert.Equal(t, "ACGT", string(rec.Seq))

	rec, err = p.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", rec.ID)
	assert.Equal(t, "TTTT", string(rec.Seq))
}

func TestParser_MissingFinalNewline(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(">a\nACGT"))

	rec, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "ACGT", string(rec.Seq))

	rec, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParser_NotFASTA(t *testing.T) {
	p := NewParserFromReader(strings.NewReader("ACGT\nACGT\n"))

	_, err := p.Next()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestParser_EmptyInput(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(""))
	rec, err := p.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestParser_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.fasta")
	require.NoError(t, os.WriteFile(path, []byte(testFASTA), 0644))

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	rec, err := p.Next()
	require.NoError(t, err)
	assert.Equal(t, "region1~100:250~+", rec.ID)
	assert.Equal(t, 3, p.LineNumber())
}

func TestParser_GzippedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.fasta.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(testFASTA))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	var ids []string
	for {
		rec, err := p.Next()
		require.NoError(t, err)
		if rec == nil {
			break
		}
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []string{"region1~100:250~+", "region2~300:350~-"}, ids)
}

func TestParser_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fasta")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	rec, err := p.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRecords(t *testing.T) {
	src := NewRecords([]*Record{
		NewRecord("a", []byte("ACGT")),
		NewRecord("b", []byte("TTTT")),
	})
	defer src.Close()

	rec, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", rec.ID)

	rec, err = src.Next()
	require.NoError(t, err)
	assert.Equal(t, "b", rec.ID)

	rec, err = src.Next()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestNewRecord_HeaderSplit(t *testing.T) {
	rec := NewRecord("id1 some description here", []byte("A"))
	assert.Equal(t, "id1", rec.ID)
	assert.Equal(t, "some description here", rec.Description)
	assert.Equal(t, "id1 some description here", rec.Header())

	rec = NewRecord("bare", nil)
	assert.Equal(t, "bare", rec.ID)
	assert.Equal(t, "bare", rec.Header())
}
