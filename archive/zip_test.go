package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Yulian302/filestream/streaming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSource struct {
	name     string
	data     []byte
	failRead bool
}

func (m *memSource) Name() string        { return m.name }
func (m *memSource) Size() int64         { return int64(len(m.data)) }
func (m *memSource) ContentType() string { return "application/octet-stream" }

func (m *memSource) ReadRange(ctx context.Context, start, end int64) (io.ReadCloser, error) {
	if m.failRead {
		return nil, errors.New("file disappeared")
	}
	return io.NopCloser(bytes.NewReader(m.data[start : end+1])), nil
}

func readZip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		out[f.Name] = content
	}
	return out
}

func TestStreamZip_ContentFidelity(t *testing.T) {
	a := &memSource{name: "a.txt", data: []byte("alpha contents")}
	b := &memSource{name: "b.txt", data: bytes.Repeat([]byte("bravo "), 10_000)}
	c := &memSource{name: "c.txt", data: []byte("charlie")}

	// Requested order differs from any natural sort on purpose.
	var buf bytes.Buffer
	err := StreamZip(context.Background(), &buf, []streaming.Source{b, a, c})
	require.NoError(t, err)

	entries := readZip(t, buf.Bytes())
	require.Len(t, entries, 3)
	assert.Equal(t, a.data, entries["a.txt"])
	assert.Equal(t, b.data, entries["b.txt"])
	assert.Equal(t, c.data, entries["c.txt"])
}

func TestStreamZip_PreservesRequestedOrder(t *testing.T) {
	a := &memSource{name: "a.txt", data: []byte("a")}
	b := &memSource{name: "b.txt", data: []byte("b")}
	c := &memSource{name: "c.txt", data: []byte("c")}

	var buf bytes.Buffer
	err := StreamZip(context.Background(), &buf, []streaming.Source{c, a, b})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "c.txt", zr.File[0].Name)
	assert.Equal(t, "a.txt", zr.File[1].Name)
	assert.Equal(t, "b.txt", zr.File[2].Name)
}

// A file deleted between validation and archiving must not sink the batch.
func TestStreamZip_SkipsUnreadableEntry(t *testing.T) {
	good := &memSource{name: "good.txt", data: []byte("still here")}
	gone := &memSource{name: "gone.txt", data: []byte("deleted"), failRead: true}
	also := &memSource{name: "also.txt", data: []byte("also here")}

	var buf bytes.Buffer
	err := StreamZip(context.Background(), &buf, []streaming.Source{good, gone, also})
	require.NoError(t, err)

	entries := readZip(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, good.data, entries["good.txt"])
	assert.Equal(t, also.data, entries["also.txt"])
}

func TestStreamZip_DuplicateNames(t *testing.T) {
	first := &memSource{name: "report.pdf", data: []byte("first")}
	second := &memSource{name: "report.pdf", data: []byte("second")}

	var buf bytes.Buffer
	err := StreamZip(context.Background(), &buf, []streaming.Source{first, second})
	require.NoError(t, err)

	entries := readZip(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Equal(t, first.data, entries["report.pdf"])
	assert.Equal(t, second.data, entries["report (1).pdf"])
}

func TestStreamZip_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &memSource{name: "a.txt", data: []byte("a")}

	var buf bytes.Buffer
	err := StreamZip(ctx, &buf, []streaming.Source{src})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStreamZip_EmptyEntry(t *testing.T) {
	empty := &memSource{name: "empty.txt"}
	full := &memSource{name: "full.txt", data: []byte("data")}

	var buf bytes.Buffer
	err := StreamZip(context.Background(), &buf, []streaming.Source{empty, full})
	require.NoError(t, err)

	entries := readZip(t, buf.Bytes())
	require.Len(t, entries, 2)
	assert.Empty(t, entries["empty.txt"])
	assert.Equal(t, full.data, entries["full.txt"])
}
