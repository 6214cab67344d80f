package refgene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntervalValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   int64
		end     int64
		strand  Strand
		score   float64
		wantErr string
	}{
		{name: "valid", start: 100, end: 200, strand: StrandForward, score: 0},
		{name: "valid unspecified strand", start: 0, end: 1, strand: StrandNone, score: 500},
		{name: "end equals start", start: 100, end: 100, strand: StrandForward, wantErr: "coordinates"},
		{name: "end before start", start: 200, end: 100, strand: StrandForward, wantErr: "coordinates"},
		{name: "bad strand", start: 100, end: 200, strand: Strand("*"), wantErr: "strand"},
		{name: "empty strand", start: 100, end: 200, strand: Strand(""), wantErr: "strand"},
		{name: "nan score", start: 100, end: 200, strand: StrandForward, score: math.NaN(), wantErr: "score"},
		{name: "inf score", start: 100, end: 200, strand: StrandForward, score: math.Inf(1), wantErr: "score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, err := NewInterval("chr1", tt.start, tt.end, tt.strand, "x", tt.score)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Positive(t, iv.Length())
				assert.Equal(t, iv.End-iv.Start, iv.Length())
				return
			}
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
		})
	}
}

func TestIntervalFormatting(t *testing.T) {
	iv, err := NewInterval("chr12", 25205246, 25250929, StrandReverse, "KRAS", 0)
	require.NoError(t, err)

	assert.Equal(t, "chr12:25205246-25250929", iv.Locus())
	assert.Equal(t, "chr12\t25205246\t25250929\tKRAS\t0\t-", iv.BED())
}

func TestIntervalBEDEmptyName(t *testing.T) {
	iv, err := NewInterval("chr1", 100, 200, StrandNone, "", 500)
	require.NoError(t, err)

	assert.Equal(t, "chr1\t100\t200\t.\t500\t.", iv.BED())
}

func TestIntervalAttrPrecedence(t *testing.T) {
	iv, err := NewInterval("chr1", 100, 200, StrandForward, "GENE1", 500)
	require.NoError(t, err)
	iv.Metadata = map[string]any{
		"name":   "OVERRIDE",
		"source": "refGene",
	}

	// Metadata wins over the built-in field of the same name.
	assert.Equal(t, "OVERRIDE", iv.Attr("name"))
	// Plain metadata entries resolve.
	assert.Equal(t, "refGene", iv.Attr("source"))
	// Built-ins resolve when not shadowed.
	assert.Equal(t, "chr1", iv.Attr("chrom"))
	assert.Equal(t, int64(100), iv.Attr("start"))
	assert.Equal(t, int64(200), iv.Attr("end"))
	assert.Equal(t, StrandForward, iv.Attr("strand"))
	assert.Equal(t, 500.0, iv.Attr("score"))
	// Unknown keys return nil rather than failing.
	assert.Nil(t, iv.Attr("missing"))
	assert.Equal(t, "fallback", iv.AttrDefault("missing", "fallback"))
	assert.Equal(t, "OVERRIDE", iv.AttrDefault("name", "fallback"))
}

func TestIntervalBEDScoreNotation(t *testing.T) {
	// Large scores must stay in plain decimal notation; BED consumers do
	// not accept exponent forms like 1e+06.
	iv, err := NewInterval("chr1", 100, 200, StrandForward, "x", 1000000)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100\t200\tx\t1000000\t+", iv.BED())

	fractional, err := NewInterval("chr1", 100, 200, StrandForward, "x", 2.5)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100\t200\tx\t2.5\t+", fractional.BED())
}

func TestIntervalComparisons(t *testing.T) {
	a, err := NewInterval("chr1", 100, 200, StrandForward, ".", 500)
	require.NoError(t, err)
	b, err := NewInterval("chr1", 150, 180, StrandForward, ".", 500)
	require.NoError(t, err)
	otherChrom, err := NewInterval("chr2", 100, 200, StrandForward, ".", 500)
	require.NoError(t, err)
	otherStrand, err := NewInterval("chr1", 100, 200, StrandReverse, ".", 500)
	require.NoError(t, err)

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(otherChrom))
	assert.False(t, a.Equal(otherStrand))

	assert.True(t, a.StartsBefore(b))
	assert.False(t, b.StartsBefore(a))
	assert.True(t, a.StartsAtOrBefore(a))
	assert.True(t, a.EndsAfter(b))
	assert.True(t, a.EndsAtOrAfter(a))

	// Cross-chromosome comparisons are undefined and always false.
	assert.False(t, a.StartsBefore(otherChrom))
	assert.False(t, a.StartsAtOrBefore(otherChrom))
	assert.False(t, a.EndsAfter(otherChrom))
	assert.False(t, a.EndsAtOrAfter(otherChrom))
}

func TestIntervalContains(t *testing.T) {
	iv, err := NewInterval("chr1", 100, 200, StrandForward, ".", 500)
	require.NoError(t, err)

	assert.True(t, iv.Contains(100))
	assert.True(t, iv.Contains(199))
	assert.False(t, iv.Contains(200), "end is exclusive")
	assert.False(t, iv.Contains(99))
}

func TestSortByStart(t *testing.T) {
	mk := func(start, end int64) Interval {
		iv, err := NewInterval("chr1", start, end, StrandForward, ".", 500)
		require.NoError(t, err)
		return iv
	}

	ivs := []Interval{mk(300, 400), mk(100, 200), mk(200, 300)}
	SortByStart(ivs)

	assert.Equal(t, int64(100), ivs[0].Start)
	assert.Equal(t, int64(200), ivs[1].Start)
	assert.Equal(t, int64(300), ivs[2].Start)
}

func TestNewAminoRegion(t *testing.T) {
	ar, err := NewAminoRegion("chr1", 10, 20, StrandNone)
	require.NoError(t, err)
	assert.Equal(t, int64(10), ar.Length())

	_, err = NewAminoRegion("chr1", 20, 10, StrandNone)
	require.Error(t, err)
}
