package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"filedrop/domain"
	"filedrop/errors"
	"filedrop/infrastructure/storage"
	"filedrop/mocks"
	"filedrop/observability"
	"filedrop/runtime"
	"filedrop/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func chunkFields(id string, index, total int) map[string]string {
	return map[string]string{
		"dzuuid":            id,
		"dzchunkindex":      strconv.Itoa(index),
		"dztotalchunkcount": strconv.Itoa(total),
	}
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type stack struct {
	engine *gin.Engine
	fs     afero.Fs
}

func newStack(t *testing.T, downloadsEnabled bool) stack {
	t.Helper()
	log := slog.Default()
	fs := afero.NewMemMapFs()
	chunks := storage.NewChunkStore(fs, "/chunks", log)
	artifacts := storage.NewArtifactStore(fs, "/storage", log)
	tracker := services.NewMemorySessionTracker(runtime.NewLockTable(4), log, time.Hour)
	metrics, err := observability.NewUploadMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	coordinator := services.NewUploadCoordinator(tracker, chunks, services.NewAssembler(chunks, artifacts, log), artifacts, metrics, log)
	retrieval := services.NewRetrievalService(artifacts, metrics, log, downloadsEnabled)
	server := NewUploadServer(log, coordinator, retrieval, []byte("<html></html>"), 10)
	return stack{engine: NewRouter(server, nil, nil), fs: fs}
}

func TestUploadServer_ChunkedUploadThenDownload(t *testing.T) {
	req := require.New(t)
	s := newStack(t, true)

	// Given the three chunks of a file sent out of order
	for _, index := range []int{2, 0, 1} {
		w := serve(s.engine, multipartRequest(t, "notes.txt", string(rune('A'+index)), chunkFields("S1", index, 3)))
		req.Equal(http.StatusOK, w.Code, w.Body.String())
		req.Equal("Chunk upload successful", w.Body.String())
	}

	// When downloading by session id
	w := serve(s.engine, httptest.NewRequest(http.MethodGet, "/download/S1", nil))

	// Then the assembled file is returned as an attachment
	req.Equal(http.StatusOK, w.Code)
	req.Equal("ABC", w.Body.String())
	req.Contains(w.Header().Get("Content-Disposition"), "attachment")
	req.Contains(w.Header().Get("Content-Disposition"), "S1_notes.txt")
	req.Contains(w.Header().Get("Content-Type"), "text/plain")
}

func TestUploadServer_SingleShotUpload(t *testing.T) {
	req := require.New(t)
	s := newStack(t, true)

	w := serve(s.engine, multipartRequest(t, "f.txt", "hello", nil))
	req.Equal(http.StatusOK, w.Code)
	req.Equal("File Saved", w.Body.String())

	entries, err := afero.ReadDir(s.fs, "/storage")
	req.NoError(err)
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	req.Len(names, 1)
	req.True(strings.HasSuffix(names[0], "_f.txt"))
}

func TestUploadServer_BadRequests(t *testing.T) {
	req := require.New(t)
	s := newStack(t, true)

	cases := map[string]*http.Request{
		"no file":       multipartRequest(t, "", "", chunkFields("S2", 0, 1)),
		"missing index": multipartRequest(t, "a.txt", "x", map[string]string{"dzuuid": "S2", "dztotalchunkcount": "1"}),
		"missing total": multipartRequest(t, "a.txt", "x", map[string]string{"dzuuid": "S2", "dzchunkindex": "0"}),
		"non numeric":   multipartRequest(t, "a.txt", "x", map[string]string{"dzuuid": "S2", "dzchunkindex": "zero", "dztotalchunkcount": "1"}),
		"out of range":  multipartRequest(t, "a.txt", "x", chunkFields("S2", 3, 1)),
	}
	for name, r := range cases {
		w := serve(s.engine, r)
		req.Equal(http.StatusBadRequest, w.Code, name)
	}
}

func TestUploadServer_TotalMismatchIsBadRequest(t *testing.T) {
	req := require.New(t)
	s := newStack(t, true)

	w := serve(s.engine, multipartRequest(t, "a.txt", "A", chunkFields("S3", 0, 3)))
	req.Equal(http.StatusOK, w.Code)

	w = serve(s.engine, multipartRequest(t, "a.txt", "B", chunkFields("S3", 1, 2)))
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestUploadServer_LateChunkIsConflict(t *testing.T) {
	req := require.New(t)
	s := newStack(t, true)

	w := serve(s.engine, multipartRequest(t, "a.txt", "A", chunkFields("S4", 0, 1)))
	req.Equal(http.StatusOK, w.Code)

	w = serve(s.engine, multipartRequest(t, "a.txt", "A", chunkFields("S4", 0, 1)))
	req.Equal(http.StatusConflict, w.Code)
}

func TestUploadServer_DownloadStatuses(t *testing.T) {
	req := require.New(t)

	enabled := newStack(t, true)
	w := serve(enabled.engine, httptest.NewRequest(http.MethodGet, "/download/missing", nil))
	req.Equal(http.StatusNotFound, w.Code)

	// Downloads disabled hides existing artifacts too
	disabled := newStack(t, false)
	w = serve(disabled.engine, multipartRequest(t, "a.txt", "A", chunkFields("S5", 0, 1)))
	req.Equal(http.StatusOK, w.Code)
	w = serve(disabled.engine, httptest.NewRequest(http.MethodGet, "/download/S5", nil))
	req.Equal(http.StatusForbidden, w.Code)
	w = serve(disabled.engine, httptest.NewRequest(http.MethodGet, "/download/missing", nil))
	req.Equal(http.StatusForbidden, w.Code)
}

func TestUploadServer_AssemblyFailureIsServerError(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	coordinator := mocks.NewMockIUploadCoordinator(ctrl)
	retrieval := mocks.NewMockIRetrievalService(ctrl)

	coordinator.EXPECT().
		HandleChunk(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.ChunkRequest) (domain.UploadResult, error) {
			req.Equal(domain.SessionID("S6"), r.SessionID)
			req.Equal(1, r.Index)
			req.Equal(2, r.TotalChunks)
			req.Equal("b.bin", r.DisplayName)
			payload, err := io.ReadAll(r.Payload)
			req.NoError(err)
			req.Equal("B", string(payload))
			return domain.UploadResult{}, fmt.Errorf("%w: %w", errors.ErrAssembly, errors.ErrMissingChunk)
		})

	engine := NewRouter(NewUploadServer(slog.Default(), coordinator, retrieval, nil, 10), nil, nil)
	w := serve(engine, multipartRequest(t, "b.bin", "B", chunkFields("S6", 1, 2)))

	req.Equal(http.StatusInternalServerError, w.Code)
	req.Contains(w.Body.String(), "Error:")
}

func TestUploadServer_IndexHealthAndMetrics(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewUploadMetrics(reg)
	req.NoError(err)
	metrics.ChunkReceived(3)

	server := NewUploadServer(slog.Default(), mocks.NewMockIUploadCoordinator(ctrl), mocks.NewMockIRetrievalService(ctrl), []byte("<html>drop</html>"), 10)
	engine := NewRouter(server, reg, []string{"https://drop.example"})

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/", nil))
	req.Equal(http.StatusOK, w.Code)
	req.Equal("<html>drop</html>", w.Body.String())

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	req.Equal(http.StatusOK, w.Code)

	w = serve(engine, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	req.Equal(http.StatusOK, w.Code)
	req.Contains(w.Body.String(), "filedrop_chunks_received_total 1")
}

func TestStatusFor(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusBadRequest, StatusFor(fmt.Errorf("wrap: %w", errors.ErrInvalidRequest)))
	req.Equal(http.StatusBadRequest, StatusFor(errors.ErrTotalMismatch))
	req.Equal(http.StatusConflict, StatusFor(errors.ErrAssemblyInProgress))
	req.Equal(http.StatusConflict, StatusFor(errors.ErrUploadAlreadyComplete))
	req.Equal(http.StatusForbidden, StatusFor(errors.ErrDownloadsDisabled))
	req.Equal(http.StatusNotFound, StatusFor(errors.ErrArtifactNotFound))
	req.Equal(http.StatusInternalServerError, StatusFor(errors.ErrAssembly))
	req.Equal(http.StatusInternalServerError, StatusFor(stderrors.New("disk")))
}
