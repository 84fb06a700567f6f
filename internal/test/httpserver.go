package test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// NewHttpServerWithHandlers creates a new httptest.Server serving the provided handlers in order, one per request.
func NewHttpServerWithHandlers(t *testing.T, handlers []http.HandlerFunc) *httptest.Server {
	var lock sync.Mutex
	idx := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lock.Lock()
		if len(handlers) < idx+1 {
			lock.Unlock()
			t.Errorf("unexpected request, add missing handler func: %v", r)
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		handler := handlers[idx]
		idx += 1
		lock.Unlock()
		handler(w, r)
	}))
	t.Cleanup(func() {
		srv.Close()
		lock.Lock()
		defer lock.Unlock()
		if diff := len(handlers) - idx; diff != 0 {
			t.Fatalf("too many configured handlers, remove %d handler(s)", diff)
		}
	})
	return srv
}

// Requests counts the requests served by handler
type Requests struct {
	lock  sync.Mutex
	count int
}

func (r *Requests) Count() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.count
}

// Wrap returns a handler that counts each request before delegating to h
func (r *Requests) Wrap(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r.lock.Lock()
		r.count++
		r.lock.Unlock()
		h(w, req)
	}
}
