package upload

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("Jpeg", func(t *testing.T) {
		putter := &fakePutter{}
		svc := NewService(putter, "shif-bucket", "https://shif-bucket.s3.amazonaws.com/")

		url, err := svc.Upload(ctx, "image/jpeg", strings.NewReader("fake-image-bytes"))
		require.NoError(t, err)
		require.Len(t, putter.inputs, 1)

		input := putter.inputs[0]
		assert.Equal(t, "shif-bucket", *input.Bucket)
		assert.Equal(t, "image/jpeg", *input.ContentType)
		assert.Equal(t, types.ObjectCannedACLPublicRead, input.ACL)
		assert.Equal(t, "https://shif-bucket.s3.amazonaws.com/"+*input.Key, url)
		assert.NotContains(t, *input.Key, "-", "keys stay word-shaped")
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		putter := &fakePutter{}
		svc := NewService(putter, "shif-bucket", "https://shif-bucket.s3.amazonaws.com")

		_, err := svc.Upload(ctx, "application/pdf", strings.NewReader("%PDF"))
		var unsupported UnsupportedTypeError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "application/pdf", unsupported.ContentType)
		assert.Empty(t, putter.inputs, "nothing is uploaded for rejected types")
	})

	t.Run("FreshKeyPerUpload", func(t *testing.T) {
		putter := &fakePutter{}
		svc := NewService(putter, "shif-bucket", "https://shif-bucket.s3.amazonaws.com")

		url1, err := svc.Upload(ctx, "image/png", strings.NewReader("a"))
		require.NoError(t, err)
		url2, err := svc.Upload(ctx, "image/png", strings.NewReader("b"))
		require.NoError(t, err)
		assert.NotEqual(t, url1, url2)
	})
}
