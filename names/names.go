// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package names

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danielhkuo/namepair/cliparse"
)

// Source yields the raw names list
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// Load reads one name per line, trimming whitespace and skipping blank lines
func Load(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		if name := strings.TrimSpace(line); name != "" {
			out = append(out, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return out, nil
}

// Open resolves a location to a Source. s3://bucket/key reads from a
// bucket; anything else is treated as a local file path.
func Open(ctx context.Context, location string, cfg cliparse.S3Config) (Source, error) {
	if strings.HasPrefix(location, "s3://") {
		bucket, key, err := parseS3URL(location)
		if err != nil {
			return nil, err
		}
		return NewS3Source(ctx, bucket, key, cfg)
	}
	if location == "" {
		return nil, fmt.Errorf("names source is empty")
	}
	return FileSource{Path: location}, nil
}

// Read opens src and loads its names
func Read(ctx context.Context, src Source) ([]string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Load(rc)
}

type FileSource struct {
	Path string
}

func (f FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	return file, nil
}

func (f FileSource) String() string {
	return f.Path
}
