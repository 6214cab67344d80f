package refgene

import "fmt"

// NoFrame marks an exon with no reading frame, i.e. an entirely
// untranslated exon. It matches the -1 sentinel used in the exonFrames
// column of refGene tables.
const NoFrame = -1

// Exon is a single exon owned by a Transcript.
//
// Rank is the 1-based position of the exon in 5'->3' transcription order,
// so on the reverse strand the exon with the highest genomic coordinates
// has rank 1. Frame is the reading-frame phase (0, 1 or 2) at the start of
// the exon's coding portion, or NoFrame for untranslated exons.
type Exon struct {
	Interval
	Rank  int
	Frame int

	// Transcript is a non-owning back-reference to the owning transcript,
	// set when the exon is attached.
	Transcript *Transcript
}

// NewExon validates and constructs an Exon. Rank must be a positive
// integer and frame must be NoFrame or in 0..2.
func NewExon(chrom string, start, end int64, strand Strand, rank, frame int) (*Exon, error) {
	iv, err := NewInterval(chrom, start, end, strand, ".", DefaultScore)
	if err != nil {
		return nil, err
	}
	if rank < 1 {
		return nil, &ValidationError{
			Field:   "rank",
			Message: fmt.Sprintf("must be a positive integer, got %d", rank),
		}
	}
	if frame != NoFrame && (frame < 0 || frame > 2) {
		return nil, &ValidationError{
			Field:   "frame",
			Message: fmt.Sprintf("must be %d (no frame) or in 0..2, got %d", NoFrame, frame),
		}
	}
	return &Exon{Interval: iv, Rank: rank, Frame: frame}, nil
}

// IsUTR returns true exactly when the exon has no reading frame.
func (e *Exon) IsUTR() bool {
	return e.Frame == NoFrame
}

// Attr extends Interval attribute lookup with the exon's own fields,
// "rank" and "frame". A metadata entry still shadows any built-in field.
func (e *Exon) Attr(key string) any {
	if v, ok := e.Metadata[key]; ok {
		return v
	}
	switch key {
	case "rank":
		return e.Rank
	case "frame":
		return e.Frame
	}
	return e.Interval.Attr(key)
}

// AttrDefault is Attr with a fallback for unknown keys.
func (e *Exon) AttrDefault(key string, def any) any {
	if v := e.Attr(key); v != nil {
		return v
	}
	return def
}
