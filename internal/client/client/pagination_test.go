package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID int `json:"id"`
}

// pagedServer serves sizes[i] items on page i+1 of /items/.
func pagedServer(t *testing.T, sizes []int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			_, _ = fmt.Sscanf(p, "%d", &page)
		}

		offset := 0
		for i := 0; i < page-1; i++ {
			offset += sizes[i]
		}
		results := make([]item, 0, sizes[page-1])
		for i := 0; i < sizes[page-1]; i++ {
			results = append(results, item{ID: offset + i + 1})
		}

		var next *string
		if page < len(sizes) {
			n := fmt.Sprintf("%s/items/?page=%d", srv.URL, page+1)
			next = &n
		}
		writeJSON(w, http.StatusOK, Page[item]{Count: 5, Next: next, Results: results})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFetchAll_FollowsNext(t *testing.T) {
	srv, calls := pagedServer(t, []int{2, 2, 1})

	c, err := New(Options{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil, nil)
	require.NoError(t, err)

	got, err := FetchAll[item](context.Background(), c, "/items/")
	require.NoError(t, err)

	assert.Equal(t, []item{{1}, {2}, {3}, {4}, {5}}, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchAll_SinglePage(t *testing.T) {
	srv, calls := pagedServer(t, []int{3})

	c, err := New(Options{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)

	got, err := FetchAll[item](context.Background(), c, "/items/")
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetchAll_EmptyPage(t *testing.T) {
	srv, _ := pagedServer(t, []int{0})

	c, err := New(Options{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)

	got, err := FetchAll[item](context.Background(), c, "/items/")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchAll_Cycle(t *testing.T) {
	var calls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// page 2 points back at page 1
		next := srv.URL + "/items/?page=2"
		if r.URL.Query().Get("page") == "2" {
			next = srv.URL + "/items/"
		}
		writeJSON(w, http.StatusOK, Page[item]{Next: &next, Results: []item{{1}}})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)

	_, err = FetchAll[item](context.Background(), c, "/items/")
	require.ErrorIs(t, err, ErrPaginationCycle)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchAll_TooManyPages(t *testing.T) {
	var calls atomic.Int32
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		next := fmt.Sprintf("%s/items/?page=%d", srv.URL, n+1)
		writeJSON(w, http.StatusOK, Page[item]{Next: &next, Results: []item{{int(n)}}})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, MaxPages: 3}, nil, nil)
	require.NoError(t, err)

	_, err = FetchAll[item](context.Background(), c, "/items/")
	require.ErrorIs(t, err, ErrTooManyPages)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchAll_PageErrorAborts(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		next := srv.URL + "/items/?page=2"
		writeJSON(w, http.StatusOK, Page[item]{Next: &next, Results: []item{{1}}})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)

	got, err := FetchAll[item](context.Background(), c, "/items/")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.Nil(t, got)
}

func TestFetchAll_ForeignNextRejected(t *testing.T) {
	var foreignHits atomic.Int32
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignHits.Add(1)
		writeJSON(w, http.StatusOK, Page[item]{Results: []item{{2}}})
	}))
	defer foreign.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next := foreign.URL + "/items/?page=2"
		writeJSON(w, http.StatusOK, Page[item]{Next: &next, Results: []item{{1}}})
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL}, staticSource{token: "tok123"}, nil)
	require.NoError(t, err)

	got, err := FetchAll[item](context.Background(), c, "/items/")
	require.ErrorIs(t, err, ErrForeignPage)
	assert.Nil(t, got)
	assert.Equal(t, int32(0), foreignHits.Load())
}
