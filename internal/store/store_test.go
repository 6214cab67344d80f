package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/refgene-go/internal/refgene"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func parseTranscript(t *testing.T, fields []string) *refgene.Transcript {
	t.Helper()
	tr, _, err := refgene.ParseLine(fields)
	require.NoError(t, err)
	return tr
}

func sampleTranscript(t *testing.T) *refgene.Transcript {
	return parseTranscript(t, []string{
		"0", "NM_001", "chr1", "+", "100", "500", "150", "450",
		"2", "100,300,", "200,500,", "0", "GENE1", "cmpl", "cmpl", "0,1,",
	})
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestInsertAndCount(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.InsertTranscript(sampleTranscript(t)))

	count, err := s.TranscriptCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestFindByAccessionRoundTrip(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.InsertTranscript(sampleTranscript(t)))

	tr, err := s.FindByAccession("NM_001")
	require.NoError(t, err)
	require.NotNil(t, tr)

	assert.Equal(t, "NM_001", tr.Accession)
	assert.Equal(t, "GENE1", tr.Name)
	assert.Equal(t, "chr1", tr.Chrom)
	assert.Equal(t, refgene.StrandForward, tr.Strand)
	assert.Equal(t, int64(100), tr.Start)
	assert.Equal(t, int64(500), tr.End)
	assert.Equal(t, int64(150), tr.CodingStart)
	assert.Equal(t, int64(450), tr.CodingEnd)

	exons := tr.Exons()
	require.Len(t, exons, 2)
	assert.Equal(t, int64(100), exons[0].Start)
	assert.Equal(t, int64(300), exons[1].Start)
	assert.Equal(t, 1, exons[0].Rank)
	assert.Equal(t, 2, exons[1].Rank)

	// Derivation still works on the rebuilt transcript.
	length, err := tr.CodingLength()
	require.NoError(t, err)
	assert.Equal(t, int64(200), length)
}

func TestFindByAccessionMissing(t *testing.T) {
	s := openInMemory(t)

	tr, err := s.FindByAccession("NM_404")
	require.NoError(t, err)
	assert.Nil(t, tr)
}

func TestDuplicateAccessionRejected(t *testing.T) {
	s := openInMemory(t)

	require.NoError(t, s.InsertTranscript(sampleTranscript(t)))
	require.Error(t, s.InsertTranscript(sampleTranscript(t)))
}

func TestOpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "refgene.duckdb")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.InsertTranscript(sampleTranscript(t)))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.TranscriptCount()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
