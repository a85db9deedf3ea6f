package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"toolbox/api/models"
	"toolbox/api/session"
	"toolbox/api/validation"
	"toolbox/converter"
	"toolbox/pool"
)

const processLockTTL = time.Minute

var (
	ErrUnknownTool     = errors.New("tool does not process images")
	ErrSessionRequired = errors.New("session id is required")
)

type ImageService struct {
	store          session.Store
	converter      *converter.Converter
	limiter        *pool.Limiter
	logger         *zap.Logger
	defaultQuality int
	maxUploadSize  int64
	now            func() time.Time
}

type ImageServiceConfig struct {
	DefaultQuality int
	MaxUploadSize  int64
}

func NewImageService(store session.Store, conv *converter.Converter, limiter *pool.Limiter, cfg ImageServiceConfig, logger *zap.Logger) *ImageService {
	if cfg.DefaultQuality == 0 {
		cfg.DefaultQuality = converter.DefaultQuality
	}
	return &ImageService{
		store:          store,
		converter:      conv,
		limiter:        limiter,
		logger:         logger,
		defaultQuality: cfg.DefaultQuality,
		maxUploadSize:  cfg.MaxUploadSize,
		now:            time.Now,
	}
}

func key(sessionID, tool string) (session.Key, error) {
	if sessionID == "" {
		return session.Key{}, ErrSessionRequired
	}
	if _, err := LookupPreset(tool); err != nil {
		return session.Key{}, err
	}
	return session.Key{SessionID: sessionID, Tool: tool}, nil
}

// Upload makes data the active image of the session's tool, replacing any
// previous one. Nothing is stored when the upload is rejected.
func (s *ImageService) Upload(ctx context.Context, sessionID, tool, filename, declaredType string, data []byte) (*models.UploadedImage, error) {
	k, err := key(sessionID, tool)
	if err != nil {
		return nil, err
	}

	mediaType, err := validation.CheckUpload(declaredType, data, s.maxUploadSize)
	if err != nil {
		return nil, err
	}

	info, err := converter.Inspect(data)
	if err != nil {
		s.logger.Warn("Uploaded file is not a decodable image",
			zap.String("session_id", sessionID),
			zap.String("tool", tool),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, err
	}

	img := &models.UploadedImage{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Tool:        tool,
		Filename:    filename,
		ContentType: mediaType,
		Format:      info.Format,
		Width:       info.Width,
		Height:      info.Height,
		Size:        len(data),
		Data:        data,
		UploadedAt:  s.now().UTC(),
	}

	if err := s.store.Put(ctx, k, img); err != nil {
		return nil, err
	}

	s.logger.Info("Image uploaded",
		zap.String("session_id", sessionID),
		zap.String("tool", tool),
		zap.String("image_id", img.ID),
		zap.String("format", img.Format),
		zap.Int("size", img.Size),
	)

	return img, nil
}

func (s *ImageService) Active(ctx context.Context, sessionID, tool string) (*models.UploadedImage, error) {
	k, err := key(sessionID, tool)
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, k)
}

func (s *ImageService) Clear(ctx context.Context, sessionID, tool string) error {
	k, err := key(sessionID, tool)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, k); err != nil {
		return err
	}

	s.logger.Info("Image cleared",
		zap.String("session_id", sessionID),
		zap.String("tool", tool),
	)
	return nil
}

// Process re-encodes the active image with the tool's preset. Only one
// process may run per session and tool; a concurrent call gets
// session.ErrBusy. The active image stays in place whatever the outcome.
func (s *ImageService) Process(ctx context.Context, sessionID, tool string, opts ProcessOptions) (*converter.Result, error) {
	k, err := key(sessionID, tool)
	if err != nil {
		return nil, err
	}
	preset, _ := LookupPreset(tool)

	target, err := preset.Target(opts, s.defaultQuality)
	if err != nil {
		return nil, err
	}

	unlock, err := s.store.Lock(ctx, k, processLockTTL)
	if err != nil {
		if errors.Is(err, session.ErrBusy) {
			s.logger.Warn("Process rejected, already pending",
				zap.String("session_id", sessionID),
				zap.String("tool", tool),
			)
		}
		return nil, err
	}
	defer unlock()

	img, err := s.store.Get(ctx, k)
	if err != nil {
		return nil, err
	}

	res, err := s.reencode(ctx, img.Data, img.Filename, target)
	if err != nil {
		s.logger.Error("Failed to process image",
			zap.String("session_id", sessionID),
			zap.String("tool", tool),
			zap.String("image_id", img.ID),
			zap.Error(err),
		)
		return nil, err
	}

	return res, nil
}

// Reencode converts data without touching any session.
func (s *ImageService) Reencode(ctx context.Context, filename, declaredType string, data []byte, target converter.TargetSpec) (*converter.Result, error) {
	if _, err := validation.CheckUpload(declaredType, data, s.maxUploadSize); err != nil {
		return nil, err
	}
	if target.Quality == 0 && target.Format.Lossy() {
		target.Quality = s.defaultQuality
	}
	return s.reencode(ctx, data, filename, target)
}

func (s *ImageService) reencode(ctx context.Context, data []byte, filename string, target converter.TargetSpec) (*converter.Result, error) {
	var res *converter.Result
	err := s.limiter.Do(ctx, func() error {
		var err error
		res, err = s.converter.Reencode(data, filename, target)
		return err
	})
	return res, err
}
