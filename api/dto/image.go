package dto

import (
	"time"

	"toolbox/api/models"
)

type ImageResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	Tool        string `json:"tool"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Format      string `json:"format"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int    `json:"size"`
	PreviewURL  string `json:"preview_url"`
	UploadedAt  string `json:"uploaded_at"`
}

func NewImageResponse(img *models.UploadedImage) *ImageResponse {
	return &ImageResponse{
		ID:          img.ID,
		SessionID:   img.SessionID,
		Tool:        img.Tool,
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Format:      img.Format,
		Width:       img.Width,
		Height:      img.Height,
		Size:        img.Size,
		PreviewURL:  "/api/tools/" + img.Tool + "/image?session=" + img.SessionID,
		UploadedAt:  img.UploadedAt.Format(time.RFC3339),
	}
}
