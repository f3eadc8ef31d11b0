package timeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timelineServer(t *testing.T, partialResponses int32, statuses []Status) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n <= partialResponses {
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write([]byte("[]"))
			return
		}
		_ = json.NewEncoder(w).Encode(statuses)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestHTTPSource_Fetch(t *testing.T) {
	want := []Status{{ID: "1", Content: "hello"}}
	srv, _ := timelineServer(t, 1, want)
	src := NewHTTPSource(srv.URL, srv.Client())

	page, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.True(t, page.Partial)

	page, err = src.Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, page.Partial)
	assert.Equal(t, want, page.Statuses)
}

func TestHTTPSource_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHome_LoadFresh(t *testing.T) {
	srv, calls := timelineServer(t, 0, []Status{{ID: "1"}, {ID: "2"}})
	home := NewHome(NewHTTPSource(srv.URL, srv.Client()), WithInterval(10*time.Millisecond))

	statuses, err := home.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, statuses, 2)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, home.Polling())
}

func TestHome_LoadPollsWhilePartial(t *testing.T) {
	srv, calls := timelineServer(t, 3, []Status{{ID: "9"}})
	var ticks atomic.Int32
	home := NewHome(NewHTTPSource(srv.URL, srv.Client()),
		WithInterval(10*time.Millisecond),
		WithTickHook(func(error) { ticks.Add(1) }),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	statuses, err := home.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Status{{ID: "9"}}, statuses)
	assert.Equal(t, int32(4), calls.Load())
	assert.Eventually(t, func() bool { return !home.Polling() }, time.Second, 5*time.Millisecond)

	seen := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, seen, calls.Load(), "no fetches after the timeline is fresh")
}

func TestHome_LoadCancelled(t *testing.T) {
	srv, _ := timelineServer(t, 1<<30, nil)
	home := NewHome(NewHTTPSource(srv.URL, srv.Client()), WithInterval(10*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := home.Load(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Eventually(t, func() bool { return !home.Polling() }, time.Second, 5*time.Millisecond)
}
