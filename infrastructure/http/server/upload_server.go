package server

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"filedrop/domain"
	"filedrop/errors"
	"filedrop/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	msgChunkAccepted = "Chunk upload successful"
	msgFileSaved     = "File Saved"
	multipartSlack   = 1 * domain.MB
)

// UploadServer maps the Dropzone wire protocol onto the upload and retrieval services.
type UploadServer struct {
	log          *slog.Logger
	coordinator  services.IUploadCoordinator
	retrieval    services.IRetrievalService
	indexPage    []byte
	maxBodyBytes int64
}

func NewUploadServer(
	log *slog.Logger,
	coordinator services.IUploadCoordinator,
	retrieval services.IRetrievalService,
	indexPage []byte,
	maxFileSizeMB int,
) *UploadServer {
	return &UploadServer{
		log:          log,
		coordinator:  coordinator,
		retrieval:    retrieval,
		indexPage:    indexPage,
		maxBodyBytes: int64(maxFileSizeMB)*domain.MB + multipartSlack,
	}
}

// NewRouter builds the gin engine exposing the upload page, upload, download, metrics and health routes.
func NewRouter(s *UploadServer, gatherer prometheus.Gatherer, allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(corsConfig(allowedOrigins)))

	engine.GET("/", s.Index)
	engine.POST("/upload", s.Upload)
	engine.GET("/download/:id", s.Download)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return engine
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Cache-Control", "X-Requested-With"}
	return config
}

func (s *UploadServer) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.indexPage)
}

// Upload accepts either one Dropzone chunk (dzuuid present) or a whole file.
func (s *UploadServer) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			c.String(http.StatusRequestEntityTooLarge, "Upload exceeds %d bytes", tooLarge.Limit)
			return
		}
		c.String(http.StatusBadRequest, "No file provided")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		s.fail(c, fmt.Errorf("open multipart file: %w", err))
		return
	}
	defer file.Close()

	sessionID := c.PostForm("dzuuid")
	if sessionID == "" {
		if _, err := s.coordinator.HandleSingleShot(c.Request.Context(), fileHeader.Filename, file); err != nil {
			s.fail(c, err)
			return
		}
		c.String(http.StatusOK, msgFileSaved)
		return
	}

	index, total, err := chunkPosition(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.coordinator.HandleChunk(c.Request.Context(), domain.ChunkRequest{
		SessionID:   domain.SessionID(sessionID),
		Index:       index,
		TotalChunks: total,
		DisplayName: fileHeader.Filename,
		Payload:     file,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if result.Outcome == domain.UploadComplete && result.Artifact != nil {
		s.log.Info("Upload complete", "session_id", sessionID, "artifact_id", result.Artifact.ID, "name", fileHeader.Filename)
	}
	c.String(http.StatusOK, msgChunkAccepted)
}

func chunkPosition(c *gin.Context) (int, int, error) {
	fields := [2]int{}
	for i, name := range []string{"dzchunkindex", "dztotalchunkcount"} {
		raw, ok := c.GetPostForm(name)
		if !ok {
			return 0, 0, fmt.Errorf("%w: not all required fields supplied, missing %s", errors.ErrInvalidRequest, name)
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %s is not an integer", errors.ErrInvalidRequest, name)
		}
		fields[i] = value
	}
	return fields[0], fields[1], nil
}

func (s *UploadServer) Download(c *gin.Context) {
	ctx := c.Request.Context()
	artifact, err := s.retrieval.Resolve(ctx, c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	r, err := s.retrieval.Open(ctx, artifact)
	if err != nil {
		s.fail(c, err)
		return
	}
	defer r.Close()

	contentType := artifact.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": string(artifact.ID)})
	c.DataFromReader(http.StatusOK, artifact.Size, contentType, r, map[string]string{
		"Content-Disposition": disposition,
	})
}

func (s *UploadServer) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", "path", c.FullPath(), "error", err)
		c.String(status, "Error: %v", err)
		return
	}
	c.String(status, "%s", err.Error())
}

// StatusFor maps service errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.IsClientError(err):
		return http.StatusBadRequest
	case errors.IsAlreadyComplete(err):
		return http.StatusConflict
	case stderrors.Is(err, errors.ErrDownloadsDisabled):
		return http.StatusForbidden
	case stderrors.Is(err, errors.ErrArtifactNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
