package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	MinioClient *minio.Client
	BucketName  string
)

// ConnectMinio initializes the object storage client used for poster images.
// The bucket is created on first run when it does not exist yet.
func ConnectMinio() *minio.Client {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	BucketName = os.Getenv("MINIO_BUCKET")
	if BucketName == "" {
		BucketName = "posters"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	MinioClient = client

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, BucketName)
	if err != nil {
		log.Printf("Failed to check bucket %s: %v", BucketName, err)
		return client
	}
	if !exists {
		if err := client.MakeBucket(ctx, BucketName, minio.MakeBucketOptions{}); err != nil {
			log.Printf("Failed to create bucket %s: %v", BucketName, err)
			return client
		}
	}

	fmt.Println("Connected to MinIO, bucket:", BucketName)
	return client
}
