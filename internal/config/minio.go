package config

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// NewMinIOClient connects to the export store and makes sure the bucket
// exists. Exports are private and handed out through presigned links, so no
// public policy is set.
func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIO.Bucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIO.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		log.WithField("bucket", cfg.MinIO.Bucket).Info("Created MinIO bucket")
	}

	return client, nil
}

// NewMinIOPresigner returns a client bound to the public endpoint. It only
// signs export links, so clients outside the network receive a host they can
// reach. The region is fixed up front so signing never calls the server.
func NewMinIOPresigner(cfg *Config) (*minio.Client, error) {
	endpoint := cfg.MinIO.PublicEndpoint
	if endpoint == "" {
		endpoint = cfg.MinIO.Endpoint
	}
	return minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.PublicUseSSL,
		Region: cfg.MinIO.Region,
	})
}
