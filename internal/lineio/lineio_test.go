package lineio

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, lr *LineReader) []string {
	t.Helper()
	var lines []string
	for {
		line, err := lr.ReadLine()
		if err == io.EOF {
			return lines
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
}

func TestReadLines(t *testing.T) {
	lr, err := New(strings.NewReader("one\ntwo\nthree\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two", "three"}, readAll(t, lr))
	assert.Equal(t, 3, lr.LineNumber())
}

func TestReadLinesCRLF(t *testing.T) {
	lr, err := New(strings.NewReader("one\r\ntwo\r\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, readAll(t, lr))
}

func TestReadLinesNoTrailingNewline(t *testing.T) {
	lr, err := New(strings.NewReader("one\ntwo"))
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, readAll(t, lr))
}

func TestReadLinesEmptySource(t *testing.T) {
	lr, err := New(strings.NewReader(""))
	require.NoError(t, err)

	_, err = lr.ReadLine()
	assert.Equal(t, io.EOF, err)
}

func TestGzipSniffing(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("compressed line\nsecond\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	lr, err := New(&buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"compressed line", "second"}, readAll(t, lr))
}

func TestOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0644))

	lr, err := Open(path)
	require.NoError(t, err)
	defer lr.Close()

	assert.Equal(t, []string{"a", "b"}, readAll(t, lr))
}

func TestOpenGzipFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.txt.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("a\nb\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	lr, err := Open(path)
	require.NoError(t, err)
	defer lr.Close()

	assert.Equal(t, []string{"a", "b"}, readAll(t, lr))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestOpenURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "remote line\n")
	}))
	defer srv.Close()

	lr, err := Open(srv.URL)
	require.NoError(t, err)
	defer lr.Close()

	assert.Equal(t, []string{"remote line"}, readAll(t, lr))
}

func TestOpenURLGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("remote gz\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	lr, err := Open(srv.URL)
	require.NoError(t, err)
	defer lr.Close()

	assert.Equal(t, []string{"remote gz"}, readAll(t, lr))
}

func TestOpenURLErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Open(srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
