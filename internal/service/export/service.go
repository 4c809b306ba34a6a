package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/service/feed"
)

// ObjectStore is the subset of *minio.Client the upload needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Presigner signs download links. It is usually a client bound to the public
// endpoint rather than the one used for uploads.
type Presigner interface {
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Result struct {
	Object    string    `json:"object"`
	URL       string    `json:"url"`
	Count     int       `json:"count"`
	ExpiresAt time.Time `json:"expires_at"`
}

type document struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Viewer      domain.Viewer         `json:"viewer"`
	Count       int                   `json:"count"`
	Items       []domain.DisplayEvent `json:"items"`
}

type Service interface {
	ExportFeed(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (*Result, error)
}

type service struct {
	feedSvc   feed.Service
	store     ObjectStore
	presigner Presigner
	bucket    string
	expiry    time.Duration
	clock     func() time.Time
}

func NewService(feedSvc feed.Service, store ObjectStore, presigner Presigner, bucket string, expiry time.Duration) Service {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &service{
		feedSvc:   feedSvc,
		store:     store,
		presigner: presigner,
		bucket:    bucket,
		expiry:    expiry,
		clock:     time.Now,
	}
}

// ExportFeed writes the viewer's full combined feed to the object store and
// returns a presigned link to it. Only ADMIN and MANAGER may export.
func (s *service) ExportFeed(ctx context.Context, viewer domain.Viewer, q domain.FeedQuery) (*Result, error) {
	if !domain.ParseRole(string(viewer.Role)).HasElevatedAccess() {
		return nil, domain.ErrForbidden
	}
	if s.store == nil || s.presigner == nil {
		return nil, fmt.Errorf("%w: object store not configured", domain.ErrDataUnavailable)
	}

	f, err := s.feedSvc.Assemble(ctx, viewer, q)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	body, err := json.Marshal(document{
		GeneratedAt: now,
		Viewer:      viewer,
		Count:       f.Count,
		Items:       f.Items,
	})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	object := fmt.Sprintf("feeds/%s/%s-%s.json", viewer.ID, now.Format("20060102T150405Z"), uuid.New().String()[:8])
	if _, err := s.store.PutObject(ctx, s.bucket, object, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	}); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	link, err := s.presigner.PresignedGetObject(ctx, s.bucket, object, s.expiry, nil)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	log.WithFields(log.Fields{
		"object": object,
		"viewer": viewer.ID,
		"count":  f.Count,
	}).Info("feed exported")

	return &Result{
		Object:    object,
		URL:       link.String(),
		Count:     f.Count,
		ExpiresAt: now.Add(s.expiry),
	}, nil
}
