package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/willabides/warcline"
)

var (
	errTruncatedHeader = errors.New("header block ends before blank line")
	errNoContentLength = errors.New("missing or invalid Content-Length")
)

// recordSeparator is the CRLF CRLF that follows every record block.
const recordSeparator = 4

type field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type record struct {
	File    string  `json:"file"`
	Offset  int64   `json:"offset"`
	Version string  `json:"version"`
	Fields  []field `json:"fields"`
	Length  int64   `json:"length"`
	Block   []byte  `json:"block,omitempty"`
}

func (r *record) get(name string) string {
	for _, f := range r.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value
		}
	}
	return ""
}

type walkOptions struct {
	types []string
	block bool
}

func (o walkOptions) keep(rec *record) bool {
	if len(o.types) == 0 {
		return true
	}
	recType := rec.get("WARC-Type")
	for _, s := range o.types {
		if strings.EqualFold(s, recType) {
			return true
		}
	}
	return false
}

func splitField(line string) field {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return field{Name: strings.TrimSpace(line)}
	}
	return field{
		Name:  strings.TrimSpace(line[:idx]),
		Value: strings.TrimSpace(line[idx+1:]),
	}
}

// walkRecords reads records from lr until it is exhausted, calling emit for
// every record that passes opts. It returns the number of records read.
func walkRecords(ctx context.Context, lr *warcline.LineReader, file string, opts walkOptions, emit func(*record) error) (int, error) {
	var count int
	for {
		offset := lr.Offset()
		version, err := lr.ReadLine(ctx)
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		if version == "" {
			continue
		}
		rec := &record{
			File:    file,
			Offset:  offset,
			Version: version,
			Length:  -1,
		}
		err = readFields(ctx, lr, rec)
		if err != nil {
			return count, fmt.Errorf("%s: record at offset %d: %w", file, offset, err)
		}
		keep := opts.keep(rec)
		switch {
		case keep && opts.block && int64(int(rec.Length)) != rec.Length:
			err = fmt.Errorf("block of %d bytes: %w", rec.Length, warcline.ErrInvalidLength)
		case keep && opts.block:
			rec.Block, err = lr.ReadExact(ctx, int(rec.Length))
		default:
			err = lr.Skip(ctx, rec.Length)
		}
		if err == nil {
			err = lr.Skip(ctx, recordSeparator)
		}
		if err != nil {
			return count, fmt.Errorf("%s: record at offset %d: %w", file, offset, err)
		}
		count++
		if !keep {
			continue
		}
		err = emit(rec)
		if err != nil {
			return count, err
		}
	}
}

func readFields(ctx context.Context, lr *warcline.LineReader, rec *record) error {
	for {
		line, err := lr.ReadLine(ctx)
		if err == io.EOF {
			return errTruncatedHeader
		}
		if err != nil {
			return err
		}
		if line == "" {
			break
		}
		f := splitField(line)
		rec.Fields = append(rec.Fields, f)
		if strings.EqualFold(f.Name, "Content-Length") {
			rec.Length, err = strconv.ParseInt(f.Value, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", errNoContentLength, f.Value)
			}
		}
	}
	if rec.Length < 0 {
		return errNoContentLength
	}
	return nil
}
