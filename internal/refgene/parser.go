package refgene

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldCount is the number of tab-delimited columns in a refGene line:
// bin, name, chrom, strand, txStart, txEnd, cdsStart, cdsEnd, exonCount,
// exonStarts, exonEnds, score, name2, cdsStartStat, cdsEndStat, exonFrames.
const FieldCount = 16

// Column indices into a split refGene line. The bin column is ignored.
const (
	colAccession = 1
	colChrom     = 2
	colStrand    = 3
	colTxStart   = 4
	colTxEnd     = 5
	colCDSStart  = 6
	colCDSEnd    = 7
	colExonCount = 8
	colStarts    = 9
	colEnds      = 10
	colScore     = 11
	colName      = 12
	colStartStat = 13
	colEndStat   = 14
	colFrames    = 15
)

// ParseLine converts one split refGene line into a Transcript with its
// owned exons. It returns the transcript, the number of exon triplets that
// were dropped because a start, end or frame token was empty, and an error.
//
// Dropping incomplete triplets is a deliberate best-effort policy: the
// affected exon is skipped and the transcript is still produced, with the
// drop count surfaced for diagnostics. A wrong column count, by contrast,
// indicates a corrupt file and yields a *FormatError.
//
// Exon ranks follow 5'->3' transcription order: for "+" or unspecified
// strands they ascend 1..N in file order, for "-" they descend N..1, while
// the per-exon columns themselves stay ordered by increasing genomic
// coordinate.
func ParseLine(fields []string) (*Transcript, int, error) {
	if len(fields) != FieldCount {
		return nil, 0, &FormatError{
			Message: fmt.Sprintf("expected %d tab-delimited fields, found %d", FieldCount, len(fields)),
		}
	}

	txStart, err := parseCoord(fields[colTxStart], "txStart")
	if err != nil {
		return nil, 0, err
	}
	txEnd, err := parseCoord(fields[colTxEnd], "txEnd")
	if err != nil {
		return nil, 0, err
	}
	cdsStart, err := parseCoord(fields[colCDSStart], "cdsStart")
	if err != nil {
		return nil, 0, err
	}
	cdsEnd, err := parseCoord(fields[colCDSEnd], "cdsEnd")
	if err != nil {
		return nil, 0, err
	}
	exonCount, err := strconv.Atoi(fields[colExonCount])
	if err != nil {
		return nil, 0, &FormatError{Message: fmt.Sprintf("invalid exonCount %q", fields[colExonCount])}
	}
	score, err := strconv.ParseFloat(fields[colScore], 64)
	if err != nil {
		return nil, 0, &FormatError{Message: fmt.Sprintf("invalid score %q", fields[colScore])}
	}

	strand := Strand(fields[colStrand])
	iv, err := NewInterval(fields[colChrom], txStart, txEnd, strand, fields[colName], score)
	if err != nil {
		return nil, 0, err
	}
	t, err := NewTranscript(iv, fields[colAccession], cdsStart, cdsEnd, fields[colStartStat], fields[colEndStat])
	if err != nil {
		return nil, 0, err
	}

	starts := strings.Split(fields[colStarts], ",")
	ends := strings.Split(fields[colEnds], ",")
	frames := strings.Split(fields[colFrames], ",")

	// The CSV columns usually end with a trailing comma, yielding one empty
	// token past the declared exon count; iterate only as far as every
	// parallel list reaches.
	n := exonCount
	for _, l := range []int{len(starts), len(ends), len(frames)} {
		if l < n {
			n = l
		}
	}

	dropped := 0
	for i := 0; i < n; i++ {
		if starts[i] == "" || ends[i] == "" || frames[i] == "" {
			dropped++
			continue
		}

		start, err := parseCoord(starts[i], "exonStarts")
		if err != nil {
			return nil, dropped, err
		}
		end, err := parseCoord(ends[i], "exonEnds")
		if err != nil {
			return nil, dropped, err
		}
		frame, err := strconv.Atoi(frames[i])
		if err != nil {
			return nil, dropped, &FormatError{Message: fmt.Sprintf("invalid exonFrames entry %q", frames[i])}
		}

		rank := i + 1
		if strand == StrandReverse {
			rank = exonCount - i
		}

		exon, err := NewExon(t.Chrom, start, end, strand, rank, frame)
		if err != nil {
			return nil, dropped, err
		}
		t.AddExon(exon)
	}

	return t, dropped, nil
}

func parseCoord(tok, column string) (int64, error) {
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, &FormatError{Message: fmt.Sprintf("invalid %s %q", column, tok)}
	}
	return v, nil
}
