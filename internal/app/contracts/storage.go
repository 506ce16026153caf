package contracts

import (
	"context"
	"time"
)

type Storage interface {
	UploadObject(ctx context.Context, bucketName, objectName, contentType string, body []byte) error
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName, fileName string, expiryTime time.Duration) (string, error)
}
