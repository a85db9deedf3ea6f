package handlers

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"toolbox/api/dto"
	"toolbox/api/middleware"
	"toolbox/api/models"
	"toolbox/api/service"
	"toolbox/api/validation"
	"toolbox/converter"
)

const (
	SessionHeader = "X-Session-ID"
	// multipart framing allowed on top of the file itself
	formOverhead = 1 << 20
)

type ImageService interface {
	Upload(ctx context.Context, sessionID, tool, filename, declaredType string, data []byte) (*models.UploadedImage, error)
	Active(ctx context.Context, sessionID, tool string) (*models.UploadedImage, error)
	Clear(ctx context.Context, sessionID, tool string) error
	Process(ctx context.Context, sessionID, tool string, opts service.ProcessOptions) (*converter.Result, error)
	Reencode(ctx context.Context, filename, declaredType string, data []byte, target converter.TargetSpec) (*converter.Result, error)
}

type ImageHandler struct {
	service       ImageService
	logger        *zap.Logger
	maxUploadSize int64
}

func NewImageHandler(service ImageService, maxUploadSize int64, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		service:       service,
		logger:        logger,
		maxUploadSize: maxUploadSize,
	}
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("session")
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	traceID := middleware.GetTraceID(r.Context())
	tool := r.PathValue("slug")

	sid := sessionID(r)
	if sid == "" {
		sid = uuid.New().String()
	}
	w.Header().Set(SessionHeader, sid)

	filename, declaredType, data, err := h.readFile(w, r)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	img, err := h.service.Upload(r.Context(), sid, tool, filename, declaredType, data)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	h.logger.Info("File uploaded",
		zap.String("trace_id", traceID),
		zap.String("session_id", sid),
		zap.String("tool", tool),
		zap.String("filename", filename),
	)

	respondJSON(w, http.StatusCreated, dto.NewImageResponse(img))
}

// Preview serves the original upload bytes.
func (h *ImageHandler) Preview(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.Active(r.Context(), sessionID(r), r.PathValue("slug"))
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

func (h *ImageHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), sessionID(r), r.PathValue("slug")); err != nil {
		handleError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ImageHandler) Process(w http.ResponseWriter, r *http.Request) {
	opts, err := parseProcessOptions(r)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	res, err := h.service.Process(r.Context(), sessionID(r), r.PathValue("slug"), opts)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	writeAttachment(w, res)
}

// Reencode converts an uploaded file in one call, without a session.
func (h *ImageHandler) Reencode(w http.ResponseWriter, r *http.Request) {
	filename, declaredType, data, err := h.readFile(w, r)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	opts, err := parseProcessOptions(r)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}
	if opts.Format == "" {
		opts.Format = string(converter.FormatPNG)
	}
	format, err := converter.ParseFormat(opts.Format)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	target := converter.TargetSpec{
		Format:  format,
		Quality: opts.Quality,
		Width:   opts.Width,
		Height:  opts.Height,
	}
	if opts.KeepAspectRatio != nil {
		target.KeepAspectRatio = *opts.KeepAspectRatio
	}

	res, err := h.service.Reencode(r.Context(), filename, declaredType, data, target)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	writeAttachment(w, res)
}

func (h *ImageHandler) readFile(w http.ResponseWriter, r *http.Request) (string, string, []byte, error) {
	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+formOverhead)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return "", "", nil, fmt.Errorf("%w: failed to parse form: %w", validation.ErrMissingField, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: file", validation.ErrMissingField)
	}
	defer file.Close()

	var reader io.Reader = file
	if h.maxUploadSize > 0 {
		reader = io.LimitReader(file, h.maxUploadSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", "", nil, fmt.Errorf("read upload: %w", err)
	}
	if h.maxUploadSize > 0 && int64(len(data)) > h.maxUploadSize {
		return "", "", nil, validation.ErrFileTooLarge
	}

	return sanitizeFilename(header.Filename), header.Header.Get("Content-Type"), data, nil
}

func parseProcessOptions(r *http.Request) (service.ProcessOptions, error) {
	var opts service.ProcessOptions
	var err error

	opts.Format = r.FormValue("format")
	if opts.Quality, err = validation.ParseOptionalInt("quality", r.FormValue("quality")); err != nil {
		return opts, err
	}
	if opts.Width, err = validation.ParseOptionalInt("width", r.FormValue("width")); err != nil {
		return opts, err
	}
	if opts.Height, err = validation.ParseOptionalInt("height", r.FormValue("height")); err != nil {
		return opts, err
	}
	if v := r.FormValue("keep_aspect_ratio"); v != "" {
		keep, err := validation.ParseOptionalBool("keep_aspect_ratio", v, true)
		if err != nil {
			return opts, err
		}
		opts.KeepAspectRatio = &keep
	}
	return opts, nil
}

func writeAttachment(w http.ResponseWriter, res *converter.Result) {
	w.Header().Set("Content-Type", res.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("X-Image-Width", strconv.Itoa(res.Width))
	w.Header().Set("X-Image-Height", strconv.Itoa(res.Height))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Data)
}

func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return name
}
