package warcline

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/avast/retry-go"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// objReader reads an optionally gzipped stream and closes everything under
// it.
type objReader struct {
	rdr    io.Reader
	gzRdr  *gzip.Reader
	gz     bool
	client *storage.Client
}

func (z *objReader) Read(p []byte) (n int, err error) {
	if z.rdr == nil {
		return 0, ErrClosed
	}
	if z.gz {
		return z.gzRdr.Read(p)
	}
	return z.rdr.Read(p)
}

func (z *objReader) Close() error {
	var result *multierror.Error
	if z.gz && z.gzRdr != nil {
		if err := z.gzRdr.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if rdr, ok := z.rdr.(io.Closer); ok {
		if err := rdr.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if z.client != nil {
		if err := z.client.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	z.rdr = nil
	z.gz = false
	z.client = nil
	return result.ErrorOrNil()
}

// Reset closes the current stream and starts reading r, decompressing it when
// gz is set.
func (z *objReader) Reset(r io.Reader, gz bool) error {
	err := z.Close()
	if err != nil {
		return err
	}
	z.rdr = r
	z.gz = gz
	if !gz {
		return nil
	}
	if z.gzRdr == nil {
		z.gzRdr, err = gzip.NewReader(r)
	} else {
		err = z.gzRdr.Reset(r)
	}
	if err != nil {
		z.gz = false
	}
	return err
}

// ParseObjectURL splits a gs://bucket/object URL.
func ParseObjectURL(s string) (bucket, object string, ok bool) {
	if !strings.HasPrefix(s, "gs://") {
		return "", "", false
	}
	parts := strings.SplitN(strings.TrimPrefix(s, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// OpenObject returns a LineReader over an object in a storage bucket. Objects
// ending in .gz are decompressed even when opts.Gzip is unset.
func OpenObject(ctx context.Context, bucket, object string, opts *Options) (*LineReader, error) {
	ownsClient := opts == nil || opts.StorageClient == nil
	opts, err := opts.withDefaults(ctx)
	if err != nil {
		return nil, err
	}
	closeClient := func() {
		if ownsClient {
			_ = opts.StorageClient.Close() //nolint:errcheck // already failing
		}
	}
	logger := opts.Logger.With(zap.String("bucket", bucket), zap.String("object", object))

	var rdr *storage.Reader
	err = retry.Do(func() error {
		var openErr error
		rdr, openErr = opts.StorageClient.Bucket(bucket).Object(object).NewReader(ctx)
		return openErr
	},
		retry.Context(ctx),
		retry.Attempts(opts.RetryAttempts),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, storage.ErrObjectNotExist) &&
				!errors.Is(err, storage.ErrBucketNotExist) &&
				!errors.Is(err, context.Canceled)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Debug("retrying object open", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		closeClient()
		return nil, err
	}

	obj := new(objReader)
	err = obj.Reset(rdr, opts.Gzip || strings.HasSuffix(object, ".gz"))
	if err != nil {
		_ = obj.Close() //nolint:errcheck // already failing
		closeClient()
		return nil, err
	}
	if ownsClient {
		obj.client = opts.StorageClient
	}
	logger.Debug("opened object", zap.Bool("gzip", obj.gz), zap.Int64("size", rdr.Attrs.Size))
	return NewLineReader(NewSource(obj, opts)), nil
}
