package models

import (
	"time"
)

// UploadedImage is the image a session holds for one tool. Data is the
// original upload and is never modified after upload.
type UploadedImage struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Tool        string    `json:"tool"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Format      string    `json:"format"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Size        int       `json:"size"`
	Data        []byte    `json:"data"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
