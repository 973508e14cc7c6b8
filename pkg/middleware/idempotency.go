package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	apperrors "carrental/pkg/errors"
)

const IdempotencyHeader = "Idempotency-Key"

// IdempotencyStore holds one entry per key. Reserve claims a free key
// atomically; the claim is settled with Complete or dropped with Release.
type IdempotencyStore interface {
	Reserve(key, fingerprint string) (*CachedResponse, bool)
	Complete(key string, response *CachedResponse)
	Release(key string)
	Stop()
}

// CachedResponse is either a finished response or, while Pending is set, a
// placeholder for a request still being served.
type CachedResponse struct {
	StatusCode  int
	Headers     http.Header
	Body        []byte
	Fingerprint string
	Pending     bool
	CreatedAt   time.Time
}

type InMemoryIdempotencyStore struct {
	mu       sync.Mutex
	store    map[string]*CachedResponse
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewInMemoryIdempotencyStore(ttl time.Duration) *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		store:  make(map[string]*CachedResponse),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}

	go store.cleanup()

	return store
}

// Reserve returns the live entry for key, or records a pending entry and
// reports true when the caller now owns the key.
func (s *InMemoryIdempotencyStore) Reserve(key, fingerprint string) (*CachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.store[key]; ok {
		if time.Since(existing.CreatedAt) <= s.ttl {
			return existing, false
		}
		delete(s.store, key)
	}

	s.store[key] = &CachedResponse{
		Fingerprint: fingerprint,
		Pending:     true,
		CreatedAt:   time.Now(),
	}
	return nil, true
}

func (s *InMemoryIdempotencyStore) Complete(key string, response *CachedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	response.Pending = false
	response.CreatedAt = time.Now()
	s.store[key] = response
}

// Release forgets a pending entry so the key can be retried.
func (s *InMemoryIdempotencyStore) Release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.store[key]; ok && existing.Pending {
		delete(s.store, key)
	}
}

func (s *InMemoryIdempotencyStore) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			for key, response := range s.store {
				if time.Since(response.CreatedAt) > s.ttl {
					delete(s.store, key)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemoryIdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

type responseCapture struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (rc *responseCapture) WriteHeader(statusCode int) {
	rc.statusCode = statusCode
	rc.ResponseWriter.WriteHeader(statusCode)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key. Reusing a key with a different body is rejected, as is a
// duplicate that arrives while the first request is still running.
// Requests without the header pass straight through.
func Idempotency(store IdempotencyStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			idempotencyKey := r.Header.Get(IdempotencyHeader)
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := io.ReadAll(r.Body)
			if err != nil {
				reject(w, http.StatusBadRequest, apperrors.CodeBadRequest, "Failed to read request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			storeKey := r.Method + " " + r.URL.Path + " " + idempotencyKey
			fingerprint := fingerprintOf(raw)

			if cached, reserved := store.Reserve(storeKey, fingerprint); !reserved {
				switch {
				case cached.Fingerprint != fingerprint:
					reject(w, http.StatusUnprocessableEntity, apperrors.CodeConflict, "Idempotency-Key was already used with a different request")
				case cached.Pending:
					reject(w, http.StatusConflict, apperrors.CodeConflict, "A request with this Idempotency-Key is still in progress")
				default:
					replayCachedResponse(w, cached)
				}
				return
			}

			completed := false
			defer func() {
				if !completed {
					store.Release(storeKey)
				}
			}()

			capture := &responseCapture{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
				body:           &bytes.Buffer{},
			}
			next.ServeHTTP(capture, r)

			if capture.statusCode >= 200 && capture.statusCode < 300 {
				store.Complete(storeKey, &CachedResponse{
					StatusCode:  capture.statusCode,
					Headers:     w.Header().Clone(),
					Body:        capture.body.Bytes(),
					Fingerprint: fingerprint,
				})
				completed = true
			}
		})
	}
}

func fingerprintOf(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

func replayCachedResponse(w http.ResponseWriter, cached *CachedResponse) {
	for key, values := range cached.Headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.Header().Set("Idempotent-Replayed", "true")
	w.WriteHeader(cached.StatusCode)
	_, _ = w.Write(cached.Body)
}
