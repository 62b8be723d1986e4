package archive_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakritiieee7/hrmanagementsystem/internal/adapters/archive"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func newArchiver(p *fakePutter) *archive.Archiver {
	return archive.New(p, "resumes-bucket",
		archive.WithClock(func() time.Time { return time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC) }),
		archive.WithKeyID(func() string { return "fixed" }))
}

func TestPut(t *testing.T) {
	p := &fakePutter{}
	key, err := newArchiver(p).Put(context.Background(), "My CV (final).pdf", "application/pdf", []byte("%PDF-"))
	require.NoError(t, err)

	assert.Equal(t, "resumes/2026/03/fixed-My_CV__final_.pdf", key)
	assert.Equal(t, "resumes-bucket", aws.ToString(p.input.Bucket))
	assert.Equal(t, key, aws.ToString(p.input.Key))
	assert.Equal(t, "application/pdf", aws.ToString(p.input.ContentType))
	assert.Equal(t, []byte("%PDF-"), p.body)
}

func TestPutStripsDirectories(t *testing.T) {
	a := newArchiver(&fakePutter{})
	assert.Equal(t, "resumes/2026/03/fixed-cv.docx", a.Key(`C:\Users\me\cv.docx`))
	assert.Equal(t, "resumes/2026/03/fixed-cv.txt", a.Key("../../cv.txt"))
	assert.Equal(t, "resumes/2026/03/fixed-resume", a.Key(""))
}

func TestPutFailure(t *testing.T) {
	boom := errors.New("access denied")
	key, err := newArchiver(&fakePutter{err: boom}).Put(context.Background(), "cv.txt", "", []byte("x"))
	assert.Empty(t, key)
	assert.ErrorIs(t, err, archive.ErrArchive)
	assert.ErrorIs(t, err, boom)
}

func TestNewS3RequiresBucket(t *testing.T) {
	_, err := archive.NewS3(context.Background(), archive.Config{})
	assert.ErrorIs(t, err, archive.ErrArchive)
}

func TestNewS3WithStaticCredentials(t *testing.T) {
	a, err := archive.NewS3(context.Background(), archive.Config{
		Bucket:    "b",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, a)
}
