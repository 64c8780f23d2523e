package artifact

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

const gcsScheme = "gs://"

type objectReaderFunc func(ctx context.Context, bucket, object string) (io.ReadCloser, error)

//Opener opens recorded audio by its reference.
// A reference is either a local path (relative paths are resolved against StoragePath)
// or a Google Cloud Storage locator gs://bucket/object.
type Opener struct {
	StoragePath string

	gcsLock   sync.Mutex
	gcsClient *storage.Client
	gcsReader objectReaderFunc
}

//NewOpener creates Opener instance
func NewOpener(storagePath string) (*Opener, error) {
	cmdapp.Log.Infof("Init artifact opener at: %s", storagePath)
	res := &Opener{StoragePath: storagePath}
	res.gcsReader = res.readGCS
	return res, nil
}

//Open returns the content reader and the file name of the artifact
func (o *Opener) Open(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, "", errors.New("empty artifact reference")
	}
	if strings.HasPrefix(ref, gcsScheme) {
		bucket, object, err := parseGCS(ref)
		if err != nil {
			return nil, "", err
		}
		r, err := o.gcsReader(ctx, bucket, object)
		if err != nil {
			return nil, "", errors.Wrapf(err, "can't read %s", ref)
		}
		return r, path.Base(object), nil
	}
	fp := o.localPath(ref)
	f, err := os.Open(fp)
	if err != nil {
		return nil, "", errors.Wrapf(err, "can't open %s", fp)
	}
	return f, filepath.Base(fp), nil
}

//Close releases the storage client if it was created
func (o *Opener) Close() error {
	o.gcsLock.Lock()
	defer o.gcsLock.Unlock()
	if o.gcsClient != nil {
		err := o.gcsClient.Close()
		o.gcsClient = nil
		return err
	}
	return nil
}

func (o *Opener) localPath(ref string) string {
	if filepath.IsAbs(ref) || o.StoragePath == "" {
		return ref
	}
	return filepath.Join(o.StoragePath, ref)
}

func (o *Opener) readGCS(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	c, err := o.storageClient(ctx)
	if err != nil {
		return nil, err
	}
	return c.Bucket(bucket).Object(object).NewReader(ctx)
}

func (o *Opener) storageClient(ctx context.Context) (*storage.Client, error) {
	o.gcsLock.Lock()
	defer o.gcsLock.Unlock()
	if o.gcsClient == nil {
		cmdapp.Log.Info("Init GCS client")
		c, err := storage.NewClient(context.WithoutCancel(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "can't init GCS client")
		}
		o.gcsClient = c
	}
	return o.gcsClient, nil
}

func parseGCS(ref string) (string, string, error) {
	bucket, object, ok := strings.Cut(strings.TrimPrefix(ref, gcsScheme), "/")
	if !ok || bucket == "" || object == "" {
		return "", "", errors.Errorf("wrong GCS reference '%s'", ref)
	}
	return bucket, object, nil
}
