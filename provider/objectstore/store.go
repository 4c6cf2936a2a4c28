package objectstore

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/c360/astrotime/errors"
	"github.com/c360/astrotime/provider"
)

// Store resolves ephemeris files from a NATS JetStream ObjectStore bucket.
// Logical file names map directly to object names.
type Store struct {
	bucket string
	os     jetstream.ObjectStore
	logger *slog.Logger
}

var _ provider.Provider = (*Store)(nil)

// New binds to an existing bucket. The bucket must already exist; a missing
// bucket is a deployment error, not a soft signal.
func New(ctx context.Context, conn *nats.Conn, bucket string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, errors.WrapFatal(err, "objectstore", "New", "create JetStream context")
	}

	os, err := js.ObjectStore(ctx, bucket)
	if err != nil {
		if stderrors.Is(err, jetstream.ErrBucketNotFound) {
			return nil, errors.WrapFatal(
				fmt.Errorf("bucket %s: %w", bucket, errors.ErrBucketNotFound),
				"objectstore", "New", "bind bucket")
		}
		return nil, errors.WrapTransient(err, "objectstore", "New",
			fmt.Sprintf("bind bucket %s", bucket))
	}

	return &Store{bucket: bucket, os: os, logger: logger}, nil
}

// NewWithCreate binds to the bucket, creating it when it does not exist yet.
// Intended for tooling and tests; production deployments provision buckets
// out of band.
func NewWithCreate(ctx context.Context, conn *nats.Conn, bucket string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, errors.WrapFatal(err, "objectstore", "NewWithCreate", "create JetStream context")
	}

	os, err := js.CreateOrUpdateObjectStore(ctx, jetstream.ObjectStoreConfig{
		Bucket:      bucket,
		Description: "ephemeris coefficient files",
	})
	if err != nil {
		return nil, errors.WrapTransient(err, "objectstore", "NewWithCreate",
			fmt.Sprintf("create bucket %s", bucket))
	}

	return &Store{bucket: bucket, os: os, logger: logger}, nil
}

// Resolve implements provider.Provider. A missing object is absent, not an
// error.
func (s *Store) Resolve(ctx context.Context, name string) (io.ReadCloser, bool, error) {
	result, err := s.os.Get(ctx, name)
	if err != nil {
		if stderrors.Is(err, jetstream.ErrObjectNotFound) {
			s.logger.Debug("object absent", "bucket", s.bucket, "file", name)
			return nil, false, nil
		}
		return nil, false, errors.WrapTransient(err, "objectstore", "Resolve",
			fmt.Sprintf("get %s from bucket %s", name, s.bucket))
	}

	s.logger.Debug("object resolved", "bucket", s.bucket, "file", name)
	return result, true, nil
}

// Put uploads a coefficient file into the bucket, replacing any previous
// object of the same name.
func (s *Store) Put(ctx context.Context, name string, r io.Reader) error {
	_, err := s.os.Put(ctx, jetstream.ObjectMeta{Name: name}, r)
	if err != nil {
		return errors.WrapTransient(err, "objectstore", "Put",
			fmt.Sprintf("put %s into bucket %s", name, s.bucket))
	}
	return nil
}

// List returns the names of all objects in the bucket.
func (s *Store) List(ctx context.Context) ([]string, error) {
	infos, err := s.os.List(ctx)
	if err != nil {
		if stderrors.Is(err, jetstream.ErrNoObjectsFound) {
			return nil, nil
		}
		return nil, errors.WrapTransient(err, "objectstore", "List",
			fmt.Sprintf("list bucket %s", s.bucket))
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names, nil
}

// Delete removes an object. Deleting a missing object is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.os.Delete(ctx, name); err != nil {
		if stderrors.Is(err, jetstream.ErrObjectNotFound) {
			return nil
		}
		return errors.WrapTransient(err, "objectstore", "Delete",
			fmt.Sprintf("delete %s from bucket %s", name, s.bucket))
	}
	return nil
}

// Bucket returns the bucket name the store is bound to.
func (s *Store) Bucket() string {
	return s.bucket
}
