package objectstore_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"balearic_charter/internal/adapters/objectstore"
)

func TestClient_Upload_RetriesThenSuccess(t *testing.T) {
	var hits int32
	var lastBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			lastBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(201)
		}
	}))
	defer ts.Close()

	cl, err := objectstore.New(ts.URL, "site-media", "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url, err := cl.Upload(ctx, "fleet/oceanis.jpg", "image/jpeg", []byte("jpegdata"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if want := ts.URL + "/object/public/site-media/fleet/oceanis.jpg"; url != want {
		t.Fatalf("url = %s, want %s", url, want)
	}
	if string(lastBody) != "jpegdata" {
		t.Fatalf("body not re-sent on retry: %q", lastBody)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Delete_MissingBlobIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := objectstore.New(ts.URL, "site-media", "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := cl.Delete(ctx, "fleet/gone.jpg"); err != nil {
		t.Fatalf("delete of missing blob should be nil, got %v", err)
	}
}

func TestClient_RequiresKeyAndBucket(t *testing.T) {
	if _, err := objectstore.New("http://x", "b", "", 5); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, err := objectstore.New("http://x", "", "k", 5); err == nil {
		t.Fatalf("expected error for empty bucket")
	}
}
