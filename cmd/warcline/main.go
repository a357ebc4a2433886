package main

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"cloud.google.com/go/storage"
	"github.com/alecthomas/kong"
	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/killa-beez/gopkgs/pool"
	"github.com/willabides/warcline"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

type cliConfig struct {
	Files       []string `kong:"arg,help='WARC files to read. Local paths or gs://bucket/object URLs.'"`
	Type        []string `kong:"name=type,help='include only records with these WARC-Type values'"`
	Block       bool     `kong:"help='include record blocks (base64) in the output'"`
	Gzip        bool     `kong:"help='decompress input. Implied for names ending in .gz'"`
	Concurrency int      `kong:"default=4,help='number of files to read at once'"`
	Verbose     bool     `kong:"help='log progress to stderr'"`
}

func main() {
	var cli cliConfig
	k := kong.Parse(&cli)
	logger := zap.NewNop()
	if cli.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		k.FatalIfErrorf(err, "error creating logger")
	}
	defer func() {
		_ = logger.Sync() //nolint:errcheck // nothing to do with this error
	}()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := run(ctx, &cli, os.Stdout, logger)
	k.FatalIfErrorf(err, "error reading WARC files")
}

func run(ctx context.Context, cli *cliConfig, out io.Writer, logger *zap.Logger) error {
	if len(cli.Files) == 0 {
		return nil
	}
	opts := &warcline.Options{
		Gzip:   cli.Gzip,
		Logger: logger,
	}
	for _, file := range cli.Files {
		if _, _, ok := warcline.ParseObjectURL(file); !ok {
			continue
		}
		client, err := storage.NewClient(ctx, option.WithoutAuthentication())
		if err != nil {
			return err
		}
		defer func() {
			_ = client.Close() //nolint:errcheck // nothing to do with this error
		}()
		opts.StorageClient = client
		break
	}
	concurrency := cli.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	walkOpts := walkOptions{
		types: cli.Type,
		block: cli.Block,
	}

	var outLock sync.Mutex
	enc := jsoniter.ConfigFastest.NewEncoder(out)
	emit := func(rec *record) error {
		outLock.Lock()
		defer outLock.Unlock()
		return enc.Encode(rec)
	}

	fileErrs := make([]error, len(cli.Files))
	p := pool.New(len(cli.Files), concurrency)
	for i := range cli.Files {
		i := i
		file := cli.Files[i]
		p.Add(pool.NewWorkUnit(func(ctx2 context.Context) {
			fileErrs[i] = walkFile(ctx2, file, opts, walkOpts, emit)
		}))
	}
	p.Start(ctx)
	p.Wait()

	var result *multierror.Error
	for _, err := range fileErrs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func openFile(ctx context.Context, file string, opts *warcline.Options) (*warcline.LineReader, error) {
	if bucket, object, ok := warcline.ParseObjectURL(file); ok {
		return warcline.OpenObject(ctx, bucket, object, opts)
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	fileOpts := *opts
	fileOpts.Gzip = opts.Gzip || strings.HasSuffix(file, ".gz")
	lr, err := warcline.NewReader(f, &fileOpts)
	if err != nil {
		_ = f.Close() //nolint:errcheck // already failing
		return nil, err
	}
	return lr, nil
}

func walkFile(ctx context.Context, file string, opts *warcline.Options, walkOpts walkOptions, emit func(*record) error) error {
	logger := opts.Logger.With(zap.String("file", file))
	lr, err := openFile(ctx, file, opts)
	if err != nil {
		logger.Error("error opening file", zap.Error(err))
		return err
	}
	defer func() {
		_ = lr.Close() //nolint:errcheck // read-only
	}()
	count, err := walkRecords(ctx, lr, file, walkOpts, emit)
	if err != nil {
		logger.Error("error reading records", zap.Int("records", count), zap.Int64("offset", lr.Offset()), zap.Error(err))
		return err
	}
	logger.Info("done", zap.Int("records", count), zap.Int64("bytes", lr.Offset()))
	return nil
}
