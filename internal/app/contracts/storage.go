package contracts

import (
	"context"
)

type Storage interface {
	UploadObject(ctx context.Context, bucketName, objectName, contentType string, content []byte) (string, error)
}
