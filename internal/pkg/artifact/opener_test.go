package artifact

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGCS(t *testing.T) {
	b, o, err := parseGCS("gs://bucket/answers/q1/a.wav")
	assert.Nil(t, err)
	assert.Equal(t, "bucket", b)
	assert.Equal(t, "answers/q1/a.wav", o)
}

func TestParseGCS_Fail(t *testing.T) {
	for _, s := range []string{"gs://", "gs://bucket", "gs://bucket/", "gs:///a.wav"} {
		_, _, err := parseGCS(s)
		assert.NotNil(t, err, s)
	}
}

func TestOpen_Local(t *testing.T) {
	dir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(dir, "a.wav"), []byte("olia"), 0o644))
	o, _ := NewOpener(dir)

	r, name, err := o.Open(context.Background(), "a.wav")

	require.Nil(t, err)
	defer r.Close()
	assert.Equal(t, "a.wav", name)
	b, _ := io.ReadAll(r)
	assert.Equal(t, "olia", string(b))
}

func TestOpen_LocalAbsolute(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "b.webm")
	require.Nil(t, os.WriteFile(fn, []byte("olia"), 0o644))
	o, _ := NewOpener("/other")

	r, name, err := o.Open(context.Background(), fn)

	require.Nil(t, err)
	r.Close()
	assert.Equal(t, "b.webm", name)
}

func TestOpen_Missing(t *testing.T) {
	o, _ := NewOpener(t.TempDir())

	r, _, err := o.Open(context.Background(), "missing.wav")

	assert.Nil(t, r)
	assert.NotNil(t, err)
}

func TestOpen_Empty(t *testing.T) {
	o, _ := NewOpener("")

	_, _, err := o.Open(context.Background(), " ")

	assert.NotNil(t, err)
}

func TestOpen_GCS(t *testing.T) {
	o, _ := NewOpener("")
	var gotB, gotO string
	o.gcsReader = func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
		gotB, gotO = bucket, object
		return io.NopCloser(strings.NewReader("olia")), nil
	}

	r, name, err := o.Open(context.Background(), "gs://bucket/answers/a.wav")

	require.Nil(t, err)
	r.Close()
	assert.Equal(t, "a.wav", name)
	assert.Equal(t, "bucket", gotB)
	assert.Equal(t, "answers/a.wav", gotO)
}

func TestOpen_GCSFail(t *testing.T) {
	o, _ := NewOpener("")
	o.gcsReader = func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
		return nil, errors.New("olia")
	}

	_, _, err := o.Open(context.Background(), "gs://bucket/a.wav")

	assert.NotNil(t, err)
}

func TestClose_NoClient(t *testing.T) {
	o, _ := NewOpener("")
	assert.Nil(t, o.Close())
}
