package files

import (
	"cinelog/src/config"
	"cinelog/src/utils"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadPoster stores an uploaded poster image in the object bucket under a
// fresh key and returns the path to place in a movie's poster_url.
func UploadPoster(ctx context.Context, header *multipart.FileHeader) (string, *utils.ServiceError) {
	file, err := header.Open()
	if err != nil {
		return "", utils.NewServiceError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	objectKey := uuid.NewString() + ext

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = config.MinioClient.PutObject(
		ctx,
		config.BucketName,
		objectKey,
		file,
		header.Size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", utils.NewServiceError(http.StatusInternalServerError, fmt.Sprintf("failed to store poster: %v", err))
	}

	return "/api/v1/posters/" + objectKey, nil
}

// FetchPoster streams a stored poster back out of the bucket.
func FetchPoster(ctx context.Context, objectPath string) (io.Reader, int64, string, *utils.ServiceError) {
	objectKey := strings.TrimPrefix(objectPath, "/")

	obj, err := config.MinioClient.GetObject(ctx, config.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, "", utils.NewServiceError(http.StatusNotFound, fmt.Sprintf("object not found: %s", objectKey))
	}

	stat, err := obj.Stat()
	if err != nil {
		return nil, 0, "", utils.NewServiceError(http.StatusNotFound, fmt.Sprintf("object not found: %s", objectKey))
	}

	return obj, stat.Size, stat.ContentType, nil
}
