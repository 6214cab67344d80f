// Package lineio opens path-like identifiers as streams of decoded text
// lines. A source may be a local file, "-" for standard input, or an
// http(s) URL; gzip compression is detected transparently in all cases.
// The annotation parsers depend only on this line contract, not on how
// the bytes are fetched or decompressed.
package lineio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// LineReader yields the lines of a single source in order. It is a
// single-pass cursor: once exhausted it cannot be rewound, and it is not
// safe for concurrent use.
type LineReader struct {
	closers []io.Closer
	br      *bufio.Reader
	line    int
}

// Open opens the source identified by path. "-" reads standard input and
// "http://"/"https://" URLs are fetched over HTTP; anything else is
// treated as a local file path. Gzip content is detected by magic bytes.
func Open(path string) (*LineReader, error) {
	if path == "-" {
		return New(os.Stdin)
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := httpClient.Get(path)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", path, err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch %s: unexpected status %s", path, resp.Status)
		}
		return wrap(resp.Body)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return wrap(f)
}

// New builds a LineReader over an arbitrary reader. Closing the returned
// reader does not close r.
func New(r io.Reader) (*LineReader, error) {
	return wrapReader(r, nil)
}

func wrap(rc io.ReadCloser) (*LineReader, error) {
	lr, err := wrapReader(rc, []io.Closer{rc})
	if err != nil {
		rc.Close()
		return nil, err
	}
	return lr, nil
}

// wrapReader layers a gzip decoder over r when the stream starts with the
// gzip magic number (0x1f 0x8b).
func wrapReader(r io.Reader, closers []io.Closer) (*LineReader, error) {
	br := bufio.NewReader(r)
	sig, err := br.Peek(2)
	if err == nil && sig[0] == 0x1f && sig[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		closers = append([]io.Closer{gz}, closers...)
		br = bufio.NewReader(gz)
	}
	return &LineReader{closers: closers, br: br}, nil
}

// ReadLine returns the next line with the trailing newline stripped.
// It returns io.EOF when the source is exhausted; a final line without a
// newline is still returned before EOF is reported.
func (l *LineReader) ReadLine() (string, error) {
	line, err := l.br.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			l.line++
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	l.line++
	return strings.TrimRight(line, "\r\n"), nil
}

// LineNumber returns the 1-based number of the most recently read line.
func (l *LineReader) LineNumber() int {
	return l.line
}

// Close releases the underlying file or response body.
func (l *LineReader) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.closers = nil
	return first
}
