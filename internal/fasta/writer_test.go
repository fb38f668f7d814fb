package fasta

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WrapsSequences(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	seq := []byte(strings.Repeat("ACGTACGTAC", 13)) // 130 bases
	require.NoError(t, w.Write(NewRecord("wide~0:130~+", seq)))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, ">wide~0:130~+", lines[0])
	assert.Len(t, lines[1], 60)
	assert.Len(t, lines[2], 60)
	assert.Len(t, lines[3], 10)
}

func TestWriter_RoundTrip(t *testing.T) {
	recs := []*Record{
		NewRecord("r1~10:20~+ first", []byte("ACGTACGTACGT")),
		NewRecord("r2~30:40~-", []byte(strings.Repeat("TTGGCCAA", 20))),
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Flush())

	p := NewParserFromReader(&buf)
	for _, want := range recs {
		got, err := p.Next()
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Description, got.Description)
		assert.Equal(t, string(want.Seq), string(got.Seq))
	}
	got, err := p.Next()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWriter_EmptySequence(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write(NewRecord("empty", nil)))
	require.NoError(t, w.Flush())
	assert.Equal(t, ">empty\n", buf.String())
}
