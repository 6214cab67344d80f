package refgene

import "sort"

// Index is an in-memory lookup structure over parsed transcripts, keyed by
// chromosome and by accession. It supports point queries without
// re-reading the source file.
type Index struct {
	byChrom     map[string][]*Transcript
	byAccession map[string]*Transcript
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		byChrom:     make(map[string][]*Transcript),
		byAccession: make(map[string]*Transcript),
	}
}

// AddTranscript adds a transcript to the index. A later transcript with
// the same accession replaces the earlier one in the accession lookup.
func (x *Index) AddTranscript(t *Transcript) {
	x.byChrom[t.Chrom] = append(x.byChrom[t.Chrom], t)
	x.byAccession[t.Accession] = t
}

// ReadAll drains a fresh traversal of r into the index.
func (x *Index) ReadAll(r *Reader) error {
	cur, err := r.Transcripts()
	if err != nil {
		return err
	}
	defer cur.Close()

	for {
		t, err := cur.Next()
		if err != nil {
			return err
		}
		if t == nil {
			return nil
		}
		x.AddTranscript(t)
	}
}

// FindTranscripts returns all transcripts whose half-open span covers pos
// on the given chromosome.
func (x *Index) FindTranscripts(chrom string, pos int64) []*Transcript {
	var result []*Transcript
	for _, t := range x.byChrom[chrom] {
		if t.Contains(pos) {
			result = append(result, t)
		}
	}
	return result
}

// GetTranscript returns the transcript with the given accession, or nil.
func (x *Index) GetTranscript(accession string) *Transcript {
	return x.byAccession[accession]
}

// TranscriptCount returns the total number of indexed transcripts.
func (x *Index) TranscriptCount() int {
	count := 0
	for _, ts := range x.byChrom {
		count += len(ts)
	}
	return count
}

// Chromosomes returns a sorted list of chromosomes present in the index.
func (x *Index) Chromosomes() []string {
	chroms := make([]string, 0, len(x.byChrom))
	for chrom := range x.byChrom {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// FindTranscriptsByChrom returns all transcripts on a chromosome, in the
// order they were added.
func (x *Index) FindTranscriptsByChrom(chrom string) []*Transcript {
	return x.byChrom[chrom]
}
