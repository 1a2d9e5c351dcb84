package receipt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gcs "google.golang.org/api/storage/v1"
)

// GCSStore keeps receipts as objects of a Google Cloud Storage bucket.
type GCSStore struct {
	service *gcs.Service
	bucket  string
}

// NewGCSStore authenticates with the service account in credentialsFile, or with Application
// Default Credentials when it is empty.
func NewGCSStore(ctx context.Context, bucket string, credentialsFile string) (*GCSStore, error) {
	client, err := gcsClient(ctx, credentialsFile)
	if err != nil {
		return nil, err
	}
	service, err := gcs.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create storage client: %w", err)
	}
	return &GCSStore{service: service, bucket: bucket}, nil
}

func gcsClient(ctx context.Context, credentialsFile string) (*http.Client, error) {
	if credentialsFile == "" {
		client, err := google.DefaultClient(ctx, gcs.DevstorageReadWriteScope)
		if err != nil {
			return nil, fmt.Errorf("unable to find default credentials: %w", err)
		}
		return client, nil
	}
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, gcs.DevstorageReadWriteScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}
	return oauth2.NewClient(ctx, creds.TokenSource), nil
}

func (s *GCSStore) Put(ctx context.Context, ref string, contentType string, data []byte) error {
	object := &gcs.Object{Name: ref, ContentType: contentType}
	_, err := s.service.Objects.Insert(s.bucket, object).
		Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		log.Errorf("unable to upload receipt %s to bucket %s: %v", ref, s.bucket, err)
		return fmt.Errorf("unable to upload receipt: %w", err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, ref string) (io.ReadCloser, error) {
	resp, err := s.service.Objects.Get(s.bucket, ref).Context(ctx).Download()
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReceiptNotFound
		}
		log.Errorf("unable to download receipt %s: %v", ref, err)
		return nil, fmt.Errorf("unable to download receipt: %w", err)
	}
	return resp.Body, nil
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	refs := make([]string, 0)
	err := s.service.Objects.List(s.bucket).Prefix(prefix).Pages(ctx, func(objects *gcs.Objects) error {
		for _, object := range objects.Items {
			refs = append(refs, object.Name)
		}
		return nil
	})
	if err != nil {
		log.Errorf("unable to list receipts with prefix %s: %v", prefix, err)
		return nil, fmt.Errorf("unable to list receipts: %w", err)
	}
	sort.Strings(refs)
	return refs, nil
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
