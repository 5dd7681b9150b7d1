package storage

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"vocalcart/internal/domain"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	deletes []string

	// denied keys fail in a multi-object delete
	denied map[string]bool
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodPut:
		body, err := readPayload(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.objects[r.URL.Path] = body
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodPost && r.URL.Query().Has("delete"):
		body, _ := io.ReadAll(r.Body)
		var result strings.Builder
		result.WriteString(`<?xml version="1.0" encoding="UTF-8"?><DeleteResult>`)
		for _, chunk := range strings.Split(string(body), "<Key>")[1:] {
			key, _, _ := strings.Cut(chunk, "</Key>")
			f.deletes = append(f.deletes, key)
			if f.denied[key] {
				result.WriteString("<Error><Key>" + key + "</Key><Code>AccessDenied</Code><Message>Access Denied</Message></Error>")
				continue
			}
			result.WriteString("<Deleted><Key>" + key + "</Key></Deleted>")
		}
		result.WriteString("</DeleteResult>")
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, result.String())

	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

// readPayload returns the object bytes, unwrapping aws-chunked uploads.
func readPayload(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
		return io.ReadAll(r.Body)
	}

	var out []byte
	br := bufio.NewReader(r.Body)
	for {
		header, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(header), ";")
		size, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return out, nil
		}

		chunk := make([]byte, size)
		if _, err := io.ReadFull(br, chunk); err != nil {
			return nil, err
		}
		out = append(out, chunk...)

		if _, err := br.Discard(2); err != nil {
			return nil, err
		}
	}
}

func newFakeS3Store(t *testing.T, denied ...string) (*ImageStore, *fakeS3) {
	t.Helper()

	fake := &fakeS3{
		objects: map[string][]byte{},
		types:   map[string]string{},
		denied:  map[string]bool{},
	}
	for _, key := range denied {
		fake.denied[key] = true
	}

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	store, err := NewImageStore(Config{
		Endpoint:  strings.TrimPrefix(server.URL, "http://"),
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "vocalcart",
		Region:    "us-east-1",
	})
	require.NoError(t, err)
	return store, fake
}

func TestPublishUploadsAndPresigns(t *testing.T) {
	store, fake := newFakeS3Store(t)

	url, err := store.Publish(context.Background(), "item-1", &domain.Image{MIMEType: "image/jpeg", Data: []byte("jpeg-bytes")})
	require.NoError(t, err)

	require.Equal(t, []byte("jpeg-bytes"), fake.objects["/vocalcart/items/item-1"])
	require.Equal(t, "image/jpeg", fake.types["/vocalcart/items/item-1"])

	require.Contains(t, url, "/vocalcart/items/item-1?")
	require.Contains(t, url, "X-Amz-Signature=")
	require.Contains(t, url, "X-Amz-Expires=86400")
}

func TestPublishDefaultsContentType(t *testing.T) {
	store, fake := newFakeS3Store(t)

	_, err := store.Publish(context.Background(), "item-2", &domain.Image{Data: []byte("png")})
	require.NoError(t, err)
	require.Equal(t, "image/png", fake.types["/vocalcart/items/item-2"])
}

func TestDiscardDeletesObjects(t *testing.T) {
	store, fake := newFakeS3Store(t)

	require.NoError(t, store.Discard(context.Background(), "a", "b"))
	require.ElementsMatch(t, []string{"items/a", "items/b"}, fake.deletes)
}

func TestDiscardReportsEveryFailure(t *testing.T) {
	store, _ := newFakeS3Store(t, "items/a", "items/c")

	err := store.Discard(context.Background(), "a", "b", "c")

	require.Error(t, err)
	require.Contains(t, err.Error(), "items/a")
	require.Contains(t, err.Error(), "items/c")
	require.NotContains(t, err.Error(), "items/b")
}
