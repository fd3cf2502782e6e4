package port

import (
	"context"
	"time"
)

// UploadAuthorization is a time-limited grant to upload one object.
type UploadAuthorization struct {
	URL       string
	Method    string
	ExpiresIn time.Duration
}

type UploadSigner interface {
	// PresignUpload authorizes a single upload of the named object
	PresignUpload(ctx context.Context, objectKey string) (UploadAuthorization, error)
}
