package files_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Yulian302/filestream/files"
	filestypes "github.com/Yulian302/filestream/files/types"
	"github.com/Yulian302/filestream/routers"
	"github.com/Yulian302/filestream/services"
	"github.com/Yulian302/filestream/store"
	"github.com/Yulian302/filestream/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxBatch = 100

type fixture struct {
	router *gin.Engine
	store  *store.DiskStore
	video  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	diskStore, err := store.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	videoPath := filepath.Join(t.TempDir(), "video.mp4")

	fileService := services.NewFileService(diskStore, videoPath)
	archiveService := services.NewArchiveService(diskStore, testMaxBatch)
	handler := files.NewFileHandler(fileService, archiveService)

	r := gin.New()
	routers.RegisterFileRoutes(handler, r)

	return &fixture{router: r, store: diskStore, video: videoPath}
}

func (f *fixture) seed(t *testing.T, originalName string, content []byte) store.FileInfo {
	t.Helper()

	info, err := f.store.Save(context.Background(), originalName, bytes.NewReader(content), 1<<20)
	require.NoError(t, err)
	return info
}

func TestDownloadFile_WholeFile(t *testing.T) {
	f := newFixture(t)
	content := []byte("full download contents")
	info := f.seed(t, "doc.txt", content)

	w := test.PerformRequest(f.router, t, "GET", "/download/"+info.StoredName, nil, nil)
	require.Equal(t, 200, w.Code)

	assert.Equal(t, content, w.Body.Bytes())
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, fmt.Sprint(len(content)), w.Header().Get("Content-Length"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="doc.txt"`)
}

func TestDownloadFile_Range(t *testing.T) {
	f := newFixture(t)
	content := make([]byte, 4096)
	for i := range content {
		content[i] = byte(i % 199)
	}
	info := f.seed(t, "blob.bin", content)

	w := test.PerformRequest(f.router, t, "GET", "/download/"+info.StoredName, nil, []string{"Range: bytes=512-1023"})
	require.Equal(t, 206, w.Code)

	assert.Equal(t, "bytes 512-1023/4096", w.Header().Get("Content-Range"))
	assert.Equal(t, "512", w.Header().Get("Content-Length"))
	assert.Equal(t, content[512:1024], w.Body.Bytes())
}

func TestDownloadFile_RangeNotSatisfiable(t *testing.T) {
	f := newFixture(t)
	info := f.seed(t, "small.txt", []byte("tiny"))

	for _, header := range []string{"bytes=100-", "bytes=0-100", "bytes=3-1", "bytes=0-1,2-3"} {
		w := test.PerformRequest(f.router, t, "GET", "/download/"+info.StoredName, nil, []string{"Range: " + header})
		assert.Equal(t, 416, w.Code, "header %q", header)
		assert.Equal(t, "bytes */4", w.Header().Get("Content-Range"))
		assert.Contains(t, w.Body.String(), "error")
	}
}

func TestDownloadFile_NotFound(t *testing.T) {
	f := newFixture(t)

	w := test.PerformRequest(f.router, t, "GET", "/download/nope.bin", nil, nil)
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestVideo_RangeAndMissing(t *testing.T) {
	f := newFixture(t)

	// No video on disk yet.
	w := test.PerformRequest(f.router, t, "GET", "/video", nil, nil)
	assert.Equal(t, 404, w.Code)

	frames := make([]byte, 2048)
	for i := range frames {
		frames[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(f.video, frames, 0o644))

	w = test.PerformRequest(f.router, t, "GET", "/video", nil, []string{"Range: bytes=0-1023"})
	require.Equal(t, 206, w.Code)
	assert.Equal(t, "bytes 0-1023/2048", w.Header().Get("Content-Range"))
	assert.Equal(t, frames[:1024], w.Body.Bytes())
}

func TestListFiles(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "a.txt", []byte("aaa"))
	f.seed(t, "b.txt", []byte("bbbbb"))

	w := test.PerformRequest(f.router, t, "GET", "/files", nil, nil)
	require.Equal(t, 200, w.Code)

	var resp filestypes.FilesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 2)

	originals := make(map[string]int64)
	for _, file := range resp.Files {
		originals[file.OriginalName] = file.Size
	}
	assert.Equal(t, int64(3), originals["a.txt"])
	assert.Equal(t, int64(5), originals["b.txt"])
}

func TestDeleteFile(t *testing.T) {
	f := newFixture(t)
	info := f.seed(t, "doomed.txt", []byte("bye"))

	w := test.PerformRequest(f.router, t, "DELETE", "/files/"+info.StoredName, nil, nil)
	assert.Equal(t, 200, w.Code)

	w = test.PerformRequest(f.router, t, "GET", "/files", nil, nil)
	require.Equal(t, 200, w.Code)
	var resp filestypes.FilesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Files)

	w = test.PerformRequest(f.router, t, "DELETE", "/files/"+info.StoredName, nil, nil)
	assert.Equal(t, 404, w.Code)
}

func zipRequest(t *testing.T, filenames []string) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(filestypes.ArchiveRequest{Filenames: filenames})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestDownloadZip_MixedExistingAndMissing(t *testing.T) {
	f := newFixture(t)
	a := f.seed(t, "a.txt", []byte("alpha"))
	b := f.seed(t, "b.txt", []byte("bravo"))

	req := zipRequest(t, []string{b.StoredName, "ghost.txt", a.StoredName})
	w := test.PerformRequest(f.router, t, "POST", "/download-zip", req, []string{"Content-Type: application/json"})
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "files.zip")

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	// Caller order is preserved and the ghost is silently dropped.
	assert.Equal(t, "b.txt", zr.File[0].Name)
	assert.Equal(t, "a.txt", zr.File[1].Name)

	rc, err := zr.File[1].Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, []byte("alpha"), data)
}

func TestDownloadZip_NoneExist(t *testing.T) {
	f := newFixture(t)

	req := zipRequest(t, []string{"ghost1.txt", "ghost2.txt"})
	w := test.PerformRequest(f.router, t, "POST", "/download-zip", req, []string{"Content-Type: application/json"})
	assert.Equal(t, 404, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestDownloadZip_EmptyRequest(t *testing.T) {
	f := newFixture(t)

	req := zipRequest(t, nil)
	w := test.PerformRequest(f.router, t, "POST", "/download-zip", req, []string{"Content-Type: application/json"})
	assert.Equal(t, 400, w.Code)
}

func TestDownloadZip_BatchCeiling(t *testing.T) {
	f := newFixture(t)

	names := make([]string, testMaxBatch+1)
	for i := range names {
		names[i] = fmt.Sprintf("file-%d.txt", i)
	}

	req := zipRequest(t, names)
	w := test.PerformRequest(f.router, t, "POST", "/download-zip", req, []string{"Content-Type: application/json"})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "maximum")
}

func TestDownloadZip_MalformedBody(t *testing.T) {
	f := newFixture(t)

	w := test.PerformRequest(f.router, t, "POST", "/download-zip", strings.NewReader("{not json"), []string{"Content-Type: application/json"})
	assert.Equal(t, 400, w.Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := test.PerformRequest(f.router, t, "GET", "/healthz", nil, nil)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
