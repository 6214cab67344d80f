package refgene

import "sort"

// Transcript is a gene transcript: an interval owning an ordered collection
// of exons, with the genomic boundaries of its coding sequence.
//
// CodingStart and CodingEnd bound the CDS in genomic coordinates.
// CodingStartStatus and CodingEndStatus carry the annotation-confidence
// flags from the table (e.g. "cmpl", "incmpl", "unk") and are treated as
// opaque strings.
type Transcript struct {
	Interval
	Accession         string
	CodingStart       int64
	CodingEnd         int64
	CodingStartStatus string
	CodingEndStatus   string

	exons []*Exon
}

// NewTranscript validates iv and constructs a Transcript around it. The
// exon collection starts empty; the record parser populates it once via
// AddExon during parsing.
func NewTranscript(iv Interval, accession string, codingStart, codingEnd int64, codingStartStatus, codingEndStatus string) (*Transcript, error) {
	if err := iv.validate(); err != nil {
		return nil, err
	}
	return &Transcript{
		Interval:          iv,
		Accession:         accession,
		CodingStart:       codingStart,
		CodingEnd:         codingEnd,
		CodingStartStatus: codingStartStatus,
		CodingEndStatus:   codingEndStatus,
	}, nil
}

// AddExon attaches an exon to the transcript and sets the exon's
// back-reference. A transcript's exon collection is appended to exactly
// once, while the record is being built; transcripts are immutable after
// construction.
func (t *Transcript) AddExon(e *Exon) {
	e.Transcript = t
	t.exons = append(t.exons, e)
}

// Attr extends Interval attribute lookup with the transcript's own
// fields: "accession", "coding_start", "coding_end",
// "coding_start_status" and "coding_end_status". A metadata entry still
// shadows any built-in field.
func (t *Transcript) Attr(key string) any {
	if v, ok := t.Metadata[key]; ok {
		return v
	}
	switch key {
	case "accession":
		return t.Accession
	case "coding_start":
		return t.CodingStart
	case "coding_end":
		return t.CodingEnd
	case "coding_start_status":
		return t.CodingStartStatus
	case "coding_end_status":
		return t.CodingEndStatus
	}
	return t.Interval.Attr(key)
}

// AttrDefault is Attr with a fallback for unknown keys.
func (t *Transcript) AttrDefault(key string, def any) any {
	if v := t.Attr(key); v != nil {
		return v
	}
	return def
}

// NumExons returns the number of exons the transcript owns.
func (t *Transcript) NumExons() int {
	return len(t.exons)
}

// Exons returns the transcript's exons sorted ascending by start position.
// The comparison is the same-chromosome start order from StartsBefore; all
// exons of a transcript share its chromosome. The returned slice is a
// fresh copy, so repeated calls yield the same order.
func (t *Transcript) Exons() []*Exon {
	out := make([]*Exon, len(t.exons))
	copy(out, t.exons)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].StartsBefore(out[b].Interval)
	})
	return out
}

// CodingRegion is the CDS-overlapping portion of a single exon, derived on
// demand by CodingIntervals. It is read-only and carries non-owning
// back-references to its source exon and transcript.
type CodingRegion struct {
	Interval
	Exon       *Exon
	Transcript *Transcript
}

// CodingIntervals walks the exons in sorted order and clips each coding
// exon against the transcript's CDS boundary:
//
//   - exons with no frame, or lying wholly outside
//     [CodingStart, CodingEnd], are skipped;
//   - if CodingStart falls within the exon the region runs from
//     CodingStart to the exon end;
//   - otherwise if CodingEnd falls within the exon the region runs from
//     the exon start to CodingEnd;
//   - otherwise the whole exon is coding.
//
// The result is computed fresh on every call and never cached on the
// transcript.
func (t *Transcript) CodingIntervals() ([]*CodingRegion, error) {
	var regions []*CodingRegion
	for _, e := range t.Exons() {
		if e.IsUTR() || e.Start > t.CodingEnd || e.End < t.CodingStart {
			continue
		}

		start, end := e.Start, e.End
		switch {
		case t.CodingStart >= e.Start && t.CodingStart <= e.End:
			start = t.CodingStart
		case t.CodingEnd >= e.Start && t.CodingEnd <= e.End:
			end = t.CodingEnd
		}

		iv, err := NewInterval(e.Chrom, start, end, e.Strand, ".", DefaultScore)
		if err != nil {
			return nil, err
		}
		regions = append(regions, &CodingRegion{
			Interval:   iv,
			Exon:       e,
			Transcript: t,
		})
	}
	return regions, nil
}

// CodingLength returns the summed length of the derived coding regions.
func (t *Transcript) CodingLength() (int64, error) {
	regions, err := t.CodingIntervals()
	if err != nil {
		return 0, err
	}
	var total int64
	for _, r := range regions {
		total += r.Length()
	}
	return total, nil
}
