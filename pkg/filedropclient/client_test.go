package filedropclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sir_venger/filedrop/pkg/filedropproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer хранит загруженные файлы в памяти и отвечает по протоколу filedrop.
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	files := map[string][]byte{}
	names := map[string]string{}

	r := chi.NewRouter()
	r.Post(filedropproto.PathUpload, func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile(filedropproto.FormFileField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		files["key1"], names["key1"] = b, hdr.Filename
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"upload_path":"key1"}`))
	})
	r.Get(filedropproto.PathDownload, func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get(filedropproto.QueryKey)
		b, ok := files[key]
		if !ok {
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Disposition", "attachment; filename="+names[key])
		_, _ = w.Write(b)
	})
	r.Head(filedropproto.PathDownload, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(filedropproto.HeaderSize, "5")
		w.Header().Set(filedropproto.HeaderChecksum, "cafe")
		w.Header().Set("Content-Disposition", `attachment; filename="a b.txt"`)
	})
	r.Get(filedropproto.PathList, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["a.txt","b.txt"]`))
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func TestUploadDownload(t *testing.T) {
	ts := fakeServer(t)
	var progress bytes.Buffer
	c := New(ts.URL+"/", WithProgress(&progress))
	ctx := context.Background()

	key, err := c.Upload(ctx, "hello.txt", bytes.NewReader([]byte("hello")), 5)
	require.NoError(t, err)
	assert.Equal(t, "key1", key)

	var out bytes.Buffer
	info, err := c.Download(ctx, key, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.String())
	assert.Equal(t, "hello.txt", info.Name)
	assert.Contains(t, progress.String(), "Uploading hello.txt")
	assert.Contains(t, progress.String(), "✓")
}

func TestDownload_NotFound(t *testing.T) {
	c := New(fakeServer(t).URL)

	_, err := c.Download(context.Background(), "missing", io.Discard)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "file not found", se.Message)
}

func TestInspectAndList(t *testing.T) {
	c := New(fakeServer(t).URL)
	ctx := context.Background()

	info, err := c.Inspect(ctx, "any")
	require.NoError(t, err)
	assert.Equal(t, FileInfo{Name: "a b.txt", Size: 5, Sha256: "cafe"}, info)

	names, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names)
}

func TestProgressLine(t *testing.T) {
	p := &progressBar{prefix: "Uploading x", total: 2048, current: 1024}
	assert.Equal(t, "Uploading x [================                ]  50% 1.0 KB/2.0 KB", p.line())

	p = &progressBar{prefix: "Downloading y", current: 10}
	assert.Equal(t, "Downloading y 10 B transferred", p.line())
}

func TestStatusError(t *testing.T) {
	assert.Equal(t, "filedrop: 500 Internal Server Error", (&StatusError{StatusCode: 500}).Error())
	assert.Equal(t, "filedrop: 400 Bad Request: no key", (&StatusError{StatusCode: 400, Message: "no key"}).Error())
}
