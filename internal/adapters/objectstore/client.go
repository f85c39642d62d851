// Package objectstore talks to the hosted storage backend that holds
// the site's imagery. Blobs are addressed as bucket/key; uploads return
// the public URL consumers embed in pages.
package objectstore

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"balearic_charter/internal/adapters/observability"
)

type Client struct {
	base   string
	bucket string
	hc     *http.Client
	key    string
	rl     *rate.Limiter
}

func New(base, bucket, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("storage API key is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		bucket: bucket,
		hc:     &http.Client{Timeout: 30 * time.Second},
		key:    key,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

var ErrNotFound = fmt.Errorf("objectstore: not found")

// Upload writes data under key and returns the blob's public URL.
func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	u := c.objectURL(key)
	if err := c.do(ctx, "upload", func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return req, nil
	}); err != nil {
		return "", err
	}
	return c.PublicURL(key), nil
}

// Delete removes the blob under key. Deleting a missing blob is not an
// error; the row it backed is already gone.
func (c *Client) Delete(ctx context.Context, key string) error {
	u := c.objectURL(key)
	err := c.do(ctx, "delete", func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	})
	if err == ErrNotFound {
		return nil
	}
	return err
}

// PublicURL returns the unauthenticated read URL for key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.base, c.bucket, escapeKey(key))
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/object/%s/%s", c.base, c.bucket, escapeKey(key))
}

func escapeKey(key string) string {
	parts := strings.Split(strings.TrimLeft(key, "/"), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// do runs one mutation with client-side rate limiting and bounded
// retries on 429 and transient 5xx, honoring Retry-After when provided.
// newReq builds a fresh request per attempt so the body can be re-read.
func (c *Client) do(ctx context.Context, op string, newReq func() (*http.Request, error)) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := newReq()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.key)
		req.Header.Set("User-Agent", "balearic-charter/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveStorage(op, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return fmt.Errorf("objectstore: rejected with %d", resp.StatusCode)

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("objectstore: remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("objectstore: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
