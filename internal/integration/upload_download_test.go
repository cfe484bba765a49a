package integration

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/sir_venger/filedrop/internal/config"
	"github.com/sir_venger/filedrop/pkg/filedropclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_UploadDownload_Integrity(t *testing.T) {
	s := startStack(t, nil)
	ctx := context.Background()

	payload := bytes.Repeat([]byte{0xA1, 0xB2, 0xC3, 0xD4}, 1<<18) // ~1MB
	want := sha256.Sum256(payload)

	key, err := s.client.Upload(ctx, "blob.bin", bytes.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)
	require.Len(t, key, 32)

	var got bytes.Buffer
	info, err := s.client.Download(ctx, key, &got)
	require.NoError(t, err)
	assert.Equal(t, "blob.bin", info.Name)
	assert.Equal(t, int64(len(payload)), info.Size)
	require.True(t, bytes.Equal(payload, got.Bytes()), "downloaded data mismatch, got %d bytes want %d", got.Len(), len(payload))

	head, err := s.client.Inspect(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want[:]), head.Sha256)
	assert.Equal(t, int64(len(payload)), head.Size)
}

func Test_ZeroByteUpload(t *testing.T) {
	s := startStack(t, nil)
	ctx := context.Background()

	key, err := s.client.Upload(ctx, "empty.txt", bytes.NewReader(nil), 0)
	require.NoError(t, err)

	var got bytes.Buffer
	info, err := s.client.Download(ctx, key, &got)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
	assert.Equal(t, int64(0), info.Size)
}

func Test_UnknownKey_NotFound(t *testing.T) {
	s := startStack(t, nil)

	var got bytes.Buffer
	_, err := s.client.Download(context.Background(), "00000000000000000000000000000000", &got)
	require.Error(t, err)

	var se *filedropclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Zero(t, got.Len())
}

func Test_ConcurrentUploads_DistinctKeys(t *testing.T) {
	s := startStack(t, nil)
	ctx := context.Background()

	const n = 16
	keys := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data := []byte(fmt.Sprintf("payload #%d", i))
			keys[i], errs[i] = s.client.Upload(ctx, fmt.Sprintf("f%d.txt", i), bytes.NewReader(data), int64(len(data)))
		}(i)
	}
	wg.Wait()

	seen := map[string]struct{}{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		seen[keys[i]] = struct{}{}

		var got bytes.Buffer
		_, err := s.client.Download(ctx, keys[i], &got)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("payload #%d", i), got.String())
	}
	assert.Len(t, seen, n)

	names, err := s.client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, names, n)
}

func Test_NamingByOriginalName(t *testing.T) {
	s := startStack(t, func(c *config.Config) { c.Naming = "name" })
	ctx := context.Background()

	_, err := s.client.Upload(ctx, "report.csv", bytes.NewReader([]byte("a,b\n1,2\n")), -1)
	require.NoError(t, err)

	names, err := s.client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"report.csv"}, names)
}

func Test_UploadLimit(t *testing.T) {
	s := startStack(t, func(c *config.Config) { c.MaxUploadBytes = 1024 })

	_, err := s.client.Upload(context.Background(), "big.bin", bytes.NewReader(make([]byte, 8<<10)), 8<<10)
	require.Error(t, err)

	var se *filedropclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusRequestEntityTooLarge, se.StatusCode)

	names, err := s.client.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
