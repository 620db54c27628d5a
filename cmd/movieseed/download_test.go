package main

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMoviesCSV = "movieId,title,genres\n1,Toy Story (1995),Adventure|Animation\n"

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestOpenDataset(t *testing.T) {
	ctx := context.Background()

	t.Run("reads a local csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.csv")
		require.NoError(t, os.WriteFile(path, []byte(sampleMoviesCSV), 0o600))

		r, err := openDataset(ctx, path, "")
		require.NoError(t, err)
		defer r.Close()

		body, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, sampleMoviesCSV, string(body))
	})

	t.Run("extracts movies.csv from a downloaded archive", func(t *testing.T) {
		archive := zipArchive(t, map[string]string{
			"ml-latest-small/README.txt": "readme",
			"ml-latest-small/movies.csv": sampleMoviesCSV,
		})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(archive)
		}))
		defer srv.Close()

		r, err := openDataset(ctx, "", srv.URL)
		require.NoError(t, err)
		body, err := io.ReadAll(r)
		require.NoError(t, err)

		assert.Equal(t, sampleMoviesCSV, string(body))
		assert.NoError(t, r.Close())
	})

	t.Run("fails when the archive has no movies.csv", func(t *testing.T) {
		archive := zipArchive(t, map[string]string{"ratings.csv": "userId,movieId\n"})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(archive)
		}))
		defer srv.Close()

		_, err := openDataset(ctx, "", srv.URL)

		assert.ErrorIs(t, err, errMoviesEntryMissing)
	})

	t.Run("fails on a non-200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := openDataset(ctx, "", srv.URL)

		assert.ErrorContains(t, err, "unexpected status 404 Not Found")
	})

	t.Run("requires a source", func(t *testing.T) {
		_, err := openDataset(ctx, "", "")

		assert.Error(t, err)
	})
}
