package blob

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoClaims/internal/config"
	"autoClaims/pkg/e"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memBackend struct {
	objects map[string][]byte
	types   map[string]string
	statErr error
	putErr  error
}

func newMemBackend() *memBackend {
	return &memBackend{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memBackend) Exists(_ context.Context, key string) (bool, error) {
	if m.statErr != nil {
		return false, m.statErr
	}
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memBackend) Put(_ context.Context, key string, data []byte, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memBackend) Ping(context.Context) error { return nil }

func TestStore_UploadReturnsPublicURL(t *testing.T) {
	t.Parallel()

	mem := newMemBackend()
	s := NewStore(mem, "https://cdn.example.com/claim-photos/", testLogger())

	url, err := s.Upload(context.Background(), "CLM-1/required/front-1718360000123.jpg", []byte{1, 2, 3}, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/claim-photos/CLM-1/required/front-1718360000123.jpg", url)
	assert.Equal(t, "image/jpeg", mem.types["CLM-1/required/front-1718360000123.jpg"])
}

func TestStore_UploadNeverOverwrites(t *testing.T) {
	t.Parallel()

	mem := newMemBackend()
	s := NewStore(mem, "http://minio:9000/claim-photos", testLogger())

	_, err := s.Upload(context.Background(), "CLM-1/optional/1.jpg", []byte{1}, "image/jpeg")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "CLM-1/optional/1.jpg", []byte{2}, "image/jpeg")
	require.ErrorIs(t, err, e.ErrConflict)
	assert.Equal(t, []byte{1}, mem.objects["CLM-1/optional/1.jpg"])
}

func TestStore_UploadErrors(t *testing.T) {
	t.Parallel()

	mem := newMemBackend()
	s := NewStore(mem, "http://minio:9000/b", testLogger())

	_, err := s.Upload(context.Background(), "", []byte{1}, "image/jpeg")
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	mem.putErr = errors.New("connection refused")
	_, err = s.Upload(context.Background(), "a.jpg", []byte{1}, "image/jpeg")
	assert.ErrorIs(t, err, e.ErrInternal)

	mem.putErr = nil
	mem.statErr = context.DeadlineExceeded
	_, err = s.Upload(context.Background(), "a.jpg", []byte{1}, "image/jpeg")
	assert.ErrorIs(t, err, e.ErrDeadline)
}

func TestStore_PublicURLEscapesSegments(t *testing.T) {
	t.Parallel()

	s := NewStore(newMemBackend(), "http://h/b", testLogger())
	assert.Equal(t, "http://h/b/CLM%201/required/x.jpg", s.PublicURL("/CLM 1/required/x.jpg"))
}

func TestPublicBaseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  config.BlobConfig
		want string
	}{
		{"explicit", config.BlobConfig{PublicBaseURL: "https://cdn.example.com/p/", Endpoint: "minio:9000"}, "https://cdn.example.com/p"},
		{"bare endpoint", config.BlobConfig{Endpoint: "minio:9000", Bucket: "claim-photos"}, "http://minio:9000/claim-photos"},
		{"bare endpoint ssl", config.BlobConfig{Endpoint: "minio:9000", Bucket: "b", UseSSL: true}, "https://minio:9000/b"},
		{"schemed endpoint", config.BlobConfig{Endpoint: "https://s3.local/", Bucket: "b"}, "https://s3.local/b"},
		{"aws", config.BlobConfig{Bucket: "b", Region: "eu-west-1"}, "https://b.s3.eu-west-1.amazonaws.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicBaseURL(tc.cfg))
		})
	}
}

type fakeS3 struct {
	headErr error
	putErr  error
	puts    []*s3.PutObjectInput
}

func (f *fakeS3) HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, nil
}

func TestS3Backend_Exists(t *testing.T) {
	t.Parallel()

	api := &fakeS3{}
	b := NewS3BackendWithClient(api, "claim-photos")

	ok, err := b.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)

	api.headErr = &smithy.GenericAPIError{Code: "NotFound"}
	ok, err = b.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)

	api.headErr = &smithy.GenericAPIError{Code: "AccessDenied"}
	_, err = b.Exists(context.Background(), "k")
	assert.Error(t, err)
}

func TestS3Backend_PutIsConditional(t *testing.T) {
	t.Parallel()

	api := &fakeS3{}
	b := NewS3BackendWithClient(api, "claim-photos")

	require.NoError(t, b.Put(context.Background(), "k", []byte{1}, "image/jpeg"))
	require.Len(t, api.puts, 1)
	assert.Equal(t, "*", *api.puts[0].IfNoneMatch)
	assert.Equal(t, "claim-photos", *api.puts[0].Bucket)

	api.putErr = &smithy.GenericAPIError{Code: "PreconditionFailed"}
	err := b.Put(context.Background(), "k", []byte{1}, "image/jpeg")
	assert.ErrorIs(t, err, e.ErrConflict)
}
