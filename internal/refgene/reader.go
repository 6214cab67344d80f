package refgene

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/refgene-go/internal/lineio"
)

// Reader is a reusable descriptor for a refGene source. It holds only the
// path and a logger; every traversal opens its own line-source session, so
// one Reader can drive any number of independent traversals, concurrent or
// not, without shared cursor state.
type Reader struct {
	path   string
	logger *zap.Logger
}

// NewReader creates a reader for the given path-like identifier (local
// file, "-" for stdin, or http(s) URL; gzip is handled transparently).
func NewReader(path string) *Reader {
	return &Reader{path: path, logger: zap.NewNop()}
}

// SetLogger sets the logger used to report dropped exon records during
// traversal. The default is a no-op logger.
func (r *Reader) SetLogger(l *zap.Logger) {
	r.logger = l
}

// Path returns the source identifier the reader was created with.
func (r *Reader) Path() string {
	return r.path
}

// Transcripts starts a fresh traversal over every transcript in the
// source. The caller owns the returned cursor and should close it when
// abandoning the traversal early.
func (r *Reader) Transcripts() (*Cursor, error) {
	return r.TranscriptsMatching(nil)
}

// TranscriptsMatching starts a fresh traversal yielding only transcripts
// for which keep returns true. A nil keep yields everything.
func (r *Reader) TranscriptsMatching(keep func(*Transcript) bool) (*Cursor, error) {
	src, err := lineio.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open refgene source: %w", err)
	}
	return &Cursor{src: src, logger: r.logger, keep: keep}, nil
}

// TranscriptsByAccession starts a fresh traversal yielding transcripts
// whose accession starts with a match of pattern. The pattern is compiled
// case-insensitive and anchored at the start only, so "NM_001" also
// matches "NM_0012"; callers needing an exact match must anchor the end
// themselves ("NM_001$"). For case-sensitive or otherwise custom matching
// use TranscriptsMatching with a caller-compiled regexp.
func (r *Reader) TranscriptsByAccession(pattern string) (*Cursor, error) {
	re, err := compileAnchored(pattern)
	if err != nil {
		return nil, err
	}
	return r.TranscriptsMatching(func(t *Transcript) bool {
		return re.MatchString(t.Accession)
	})
}

// TranscriptsByName is TranscriptsByAccession for the gene name column,
// with the same case-insensitive anchored-at-start semantics.
func (r *Reader) TranscriptsByName(pattern string) (*Cursor, error) {
	re, err := compileAnchored(pattern)
	if err != nil {
		return nil, err
	}
	return r.TranscriptsMatching(func(t *Transcript) bool {
		return re.MatchString(t.Name)
	})
}

func compileAnchored(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Cursor is a single in-flight traversal. It owns its line-source handle:
// abandoning it mid-stream has no effect on the Reader or on any other
// cursor. A cursor itself is single-pass and not safe for concurrent use.
type Cursor struct {
	src     *lineio.LineReader
	logger  *zap.Logger
	keep    func(*Transcript) bool
	dropped int
	err     error
	done    bool
}

// Next returns the next transcript, or (nil, nil) once the source is
// exhausted. Every transcript is fully constructed before it is yielded.
// A *FormatError aborts the traversal: the error is sticky and subsequent
// calls keep returning it.
func (c *Cursor) Next() (*Transcript, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.done {
		return nil, nil
	}

	for {
		line, err := c.src.ReadLine()
		if err == io.EOF {
			c.done = true
			c.Close()
			return nil, nil
		}
		if err != nil {
			c.err = fmt.Errorf("read refgene line: %w", err)
			c.Close()
			return nil, c.err
		}

		t, dropped, err := ParseLine(strings.Split(strings.TrimSpace(line), "\t"))
		if err != nil {
			if fe, ok := err.(*FormatError); ok {
				fe.Line = c.src.LineNumber()
			}
			c.err = err
			c.Close()
			return nil, c.err
		}

		c.dropped += dropped
		if dropped > 0 {
			c.logger.Warn("dropped incomplete exon records",
				zap.String("accession", t.Accession),
				zap.Int("count", dropped),
				zap.Int("line", c.src.LineNumber()))
		}

		if c.keep != nil && !c.keep(t) {
			continue
		}
		return t, nil
	}
}

// Dropped returns the total number of exon triplets silently skipped so
// far in this traversal.
func (c *Cursor) Dropped() int {
	return c.dropped
}

// LineNumber returns the 1-based number of the most recently read line.
func (c *Cursor) LineNumber() int {
	return c.src.LineNumber()
}

// Close releases the cursor's line source. It is safe to call more than
// once; Next closes the cursor itself on exhaustion or error.
func (c *Cursor) Close() error {
	return c.src.Close()
}
