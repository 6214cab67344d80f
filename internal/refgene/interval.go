// Package refgene parses UCSC refGene annotation tables into a structured
// model of transcripts, exons and derived protein-coding regions.
package refgene

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Strand is the transcription direction of an interval.
type Strand string

// The three valid strand values.
const (
	StrandForward Strand = "+"
	StrandReverse Strand = "-"
	StrandNone    Strand = "."
)

// Valid returns true if s is one of "+", "-" or ".".
func (s Strand) Valid() bool {
	return s == StrandForward || s == StrandReverse || s == StrandNone
}

// DefaultScore is the score assigned to intervals parsed from sources that
// carry no score of their own.
const DefaultScore = 500

// Interval is a genomic interval with half-open coordinates: Start is
// included, End is excluded, and End must be strictly greater than Start.
//
// Metadata holds open-ended extra attributes. Attribute lookup via Attr
// follows a metadata-wins precedence contract: a metadata entry shadows the
// built-in field of the same name.
type Interval struct {
	Chrom    string
	Start    int64
	End      int64
	Strand   Strand
	Name     string
	Score    float64
	Metadata map[string]any
}

// NewInterval validates and constructs an Interval. It returns a
// *ValidationError if end is not strictly greater than start, the strand is
// not one of "+", "-" or ".", or the score is not a finite number.
func NewInterval(chrom string, start, end int64, strand Strand, name string, score float64) (Interval, error) {
	iv := Interval{
		Chrom:  chrom,
		Start:  start,
		End:    end,
		Strand: strand,
		Name:   name,
		Score:  score,
	}
	if err := iv.validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

func (i Interval) validate() error {
	if i.End <= i.Start {
		return &ValidationError{
			Field:   "coordinates",
			Message: fmt.Sprintf("exclusive end must be greater than start, got [%d, %d)", i.Start, i.End),
		}
	}
	if !i.Strand.Valid() {
		return &ValidationError{
			Field:   "strand",
			Message: fmt.Sprintf("must be %q, %q or %q, got %q", StrandForward, StrandReverse, StrandNone, string(i.Strand)),
		}
	}
	if math.IsNaN(i.Score) || math.IsInf(i.Score, 0) {
		return &ValidationError{Field: "score", Message: "must be a finite number"}
	}
	return nil
}

// Length returns End - Start.
func (i Interval) Length() int64 {
	return i.End - i.Start
}

// Locus formats the interval as "chrom:start-end".
func (i Interval) Locus() string {
	return fmt.Sprintf("%s:%d-%d", i.Chrom, i.Start, i.End)
}

// BED formats the interval as a six-column tab-delimited BED line:
// chrom, start, end, name (or "." when empty), score, strand.
func (i Interval) BED() string {
	name := i.Name
	if name == "" {
		name = "."
	}
	return strings.Join([]string{
		i.Chrom,
		strconv.FormatInt(i.Start, 10),
		strconv.FormatInt(i.End, 10),
		name,
		strconv.FormatFloat(i.Score, 'f', -1, 64),
		string(i.Strand),
	}, "\t")
}

// Attr looks up an attribute by key, merging the built-in fields with the
// Metadata map. A metadata entry takes precedence over a built-in field of
// the same name. Unknown keys return nil rather than an error. Exon and
// Transcript override Attr to merge their own fields as well.
func (i Interval) Attr(key string) any {
	if v, ok := i.Metadata[key]; ok {
		return v
	}
	switch key {
	case "chrom":
		return i.Chrom
	case "start":
		return i.Start
	case "end":
		return i.End
	case "strand":
		return i.Strand
	case "name":
		return i.Name
	case "score":
		return i.Score
	}
	return nil
}

// AttrDefault is Attr with a fallback for unknown keys.
func (i Interval) AttrDefault(key string, def any) any {
	if v := i.Attr(key); v != nil {
		return v
	}
	return def
}

// Interval ordering is partial, not total: the predicates below are defined
// only for intervals on the same chromosome and are deliberately named
// rather than hung off a generic sort interface. Callers must not assume
// comparability across chromosomes.

// Equal returns true if both intervals have the same chrom, coordinates and
// strand. Name, score and metadata do not participate in equality.
func (i Interval) Equal(o Interval) bool {
	return i.Chrom == o.Chrom && i.Start == o.Start && i.End == o.End && i.Strand == o.Strand
}

// StartsBefore returns true if both intervals share a chromosome and i
// starts strictly before o.
func (i Interval) StartsBefore(o Interval) bool {
	return i.Chrom == o.Chrom && i.Start < o.Start
}

// StartsAtOrBefore returns true if both intervals share a chromosome and i
// does not start after o.
func (i Interval) StartsAtOrBefore(o Interval) bool {
	return i.Chrom == o.Chrom && i.Start <= o.Start
}

// EndsAfter returns true if both intervals share a chromosome and i ends
// strictly after o.
func (i Interval) EndsAfter(o Interval) bool {
	return i.Chrom == o.Chrom && i.End > o.End
}

// EndsAtOrAfter returns true if both intervals share a chromosome and i
// does not end before o.
func (i Interval) EndsAtOrAfter(o Interval) bool {
	return i.Chrom == o.Chrom && i.End >= o.End
}

// Contains returns true if the half-open interval covers pos.
func (i Interval) Contains(pos int64) bool {
	return pos >= i.Start && pos < i.End
}

// SortByStart sorts intervals ascending by start position. The intervals are
// assumed to share a chromosome; the sort is stable so ties keep their
// original order.
func SortByStart(ivs []Interval) {
	sort.SliceStable(ivs, func(a, b int) bool {
		return ivs[a].Start < ivs[b].Start
	})
}

// AminoRegion is an interval expressed in amino-acid coordinates. It carries
// no fields beyond Interval and exists so protein-space regions are
// distinguishable from genomic ones.
type AminoRegion struct {
	Interval
}

// NewAminoRegion validates and constructs an AminoRegion.
func NewAminoRegion(chrom string, start, end int64, strand Strand) (*AminoRegion, error) {
	iv, err := NewInterval(chrom, start, end, strand, ".", DefaultScore)
	if err != nil {
		return nil, err
	}
	return &AminoRegion{Interval: iv}, nil
}
