package warcline

import (
	"context"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Options are options for readers and object access
type Options struct {
	// StorageClient is used by OpenObject. When nil, OpenObject creates an
	// unauthenticated client and closes it with the reader.
	StorageClient *storage.Client

	// Gzip decompresses the input. Multi-member files, such as per-record
	// compressed WARC files, are read as one stream.
	Gzip bool

	// BufferSize is the initial read-ahead buffer size. Default 8192.
	BufferSize int

	// RetryAttempts is how many times OpenObject tries to open an object.
	// Default 3.
	RetryAttempts uint

	Logger *zap.Logger
}

func (o *Options) withDefaults(ctx context.Context) (*Options, error) {
	if o == nil {
		o = new(Options)
	}
	out := &Options{
		StorageClient: o.StorageClient,
		Gzip:          o.Gzip,
		BufferSize:    o.BufferSize,
		RetryAttempts: o.RetryAttempts,
		Logger:        o.Logger,
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if out.RetryAttempts == 0 {
		out.RetryAttempts = 3
	}
	if out.BufferSize <= 0 {
		out.BufferSize = newBufferSize
	}
	var err error
	if out.StorageClient == nil {
		out.StorageClient, err = storage.NewClient(ctx, option.WithoutAuthentication())
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
