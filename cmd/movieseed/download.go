package main

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"time"
)

const moviesEntry = "movies.csv"

var errMoviesEntryMissing = errors.New(moviesEntry + " not found in archive")

// openDataset returns a reader over movies.csv, either from a local file or
// from the MovieLens archive at zipURL.
func openDataset(ctx context.Context, csvPath, zipURL string) (io.ReadCloser, error) {
	if csvPath != "" {
		f, err := os.Open(csvPath)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	if zipURL == "" {
		return nil, errors.New("either a csv path or a dataset url is required")
	}

	archive, err := os.CreateTemp("", "movielens-*.zip")
	if err != nil {
		return nil, err
	}
	removeArchive := func() {
		_ = archive.Close()
		_ = os.Remove(archive.Name())
	}

	size, err := fetch(ctx, zipURL, archive)
	if err != nil {
		removeArchive()
		return nil, err
	}

	entry, err := openZipEntry(archive, size, moviesEntry)
	if err != nil {
		removeArchive()
		return nil, err
	}
	return &datasetReader{ReadCloser: entry, cleanup: removeArchive}, nil
}

func fetch(ctx context.Context, url string, dst io.Writer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}
	return io.Copy(dst, resp.Body)
}

func openZipEntry(r io.ReaderAt, size int64, name string) (io.ReadCloser, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	for _, file := range zr.File {
		if path.Base(file.Name) == name {
			return file.Open()
		}
	}
	return nil, errMoviesEntryMissing
}

type datasetReader struct {
	io.ReadCloser
	cleanup func()
}

func (d *datasetReader) Close() error {
	err := d.ReadCloser.Close()
	d.cleanup()
	return err
}
