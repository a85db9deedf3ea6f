// Package session keeps the uploaded image each client session holds per
// tool, and serializes processing of one image.
package session

import (
	"context"
	"errors"
	"time"

	"toolbox/api/models"
)

var (
	ErrNotFound = errors.New("no image uploaded for this session")
	ErrBusy     = errors.New("image is already being processed")
)

// Key addresses one tool's image within one session.
type Key struct {
	SessionID string
	Tool      string
}

func (k Key) String() string {
	return k.SessionID + ":" + k.Tool
}

type Store interface {
	// Put replaces whatever image the key held.
	Put(ctx context.Context, key Key, img *models.UploadedImage) error
	Get(ctx context.Context, key Key) (*models.UploadedImage, error)
	Delete(ctx context.Context, key Key) error
	// Lock takes the processing lock for key without waiting. It returns
	// ErrBusy while another holder has it. The lock lapses after ttl even
	// if unlock is never called.
	Lock(ctx context.Context, key Key, ttl time.Duration) (unlock func(), err error)
}
