package ratelim

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	require.Equal(t, "10.0.0.1", clientIP("10.0.0.1:43512"))
	require.Equal(t, "::1", clientIP("[::1]:8080"))
	// no port at all, keep what we got
	require.Equal(t, "10.0.0.1", clientIP("10.0.0.1"))
}

func TestLimitSharesBucketAcrossPorts(t *testing.T) {
	rl := NewRateLimiter()
	handle := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// drain the burst, each request from a fresh ephemeral port
	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/user/signin", nil)
		r.RemoteAddr = fmt.Sprintf("10.0.0.1:%d", 40000+i)
		handle(w, r, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/user/signin", nil)
	r.RemoteAddr = "10.0.0.1:55555"
	handle(w, r, nil)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	// a different host still has its own bucket
	w = httptest.NewRecorder()
	r = httptest.NewRequest("POST", "/api/user/signin", nil)
	r.RemoteAddr = "10.0.0.2:40000"
	handle(w, r, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
