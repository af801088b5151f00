package searchclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/contentkit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":"1","title":"Install","description":"How to install","url":"/docs/install","type":"docs","breadcrumbs":["Docs","Install"],"lastModified":"2024-01-01"}]}`))
	}))
	defer srv.Close()

	results, err := New(srv.URL+"/", time.Second).Search(context.Background(), "  install & run ")
	require.NoError(t, err)
	assert.Equal(t, "install & run", gotQuery)
	require.Len(t, results, 1)
	assert.Equal(t, models.SearchResult{
		ID:           "1",
		Title:        "Install",
		Description:  "How to install",
		URL:          "/docs/install",
		Type:         models.SearchResultDocs,
		Breadcrumbs:  []string{"Docs", "Install"},
		LastModified: "2024-01-01",
	}, results[0])
}

func TestClient_SearchBlankQuerySendsNothing(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	results, err := New(srv.URL, 0).Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestClient_SearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	results, err := New(srv.URL, 0).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, results)
}

func TestClient_SearchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results": [`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			}))
			defer srv.Close()

			_, err := New(srv.URL, 0).Search(context.Background(), "q")
			assert.ErrorIs(t, err, ErrSearchUnavailable)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retries")
			assert.Equal(t, MessageSearchUnavailable, UserMessage(err))
		})
	}
}

func TestClient_SearchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Search(context.Background(), "q")
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func validContact() models.ContactRequest {
	return models.ContactRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Category: "support",
		Subject:  "Hello",
		Message:  "Hi there",
	}
}

func TestClient_SubmitContact(t *testing.T) {
	var got models.ContactRequest
	var requestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		requestID = r.Header.Get(RequestIDHeader)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := New(srv.URL, 0).SubmitContact(context.Background(), validContact())
	require.NoError(t, err)
	assert.Equal(t, validContact(), got)
	_, parseErr := uuid.Parse(requestID)
	assert.NoError(t, parseErr, "request id %q", requestID)
}

func TestClient_SubmitContactFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError, http.StatusFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		err := New(srv.URL, 0, WithHTTPClient(&http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		})).SubmitContact(context.Background(), validContact())
		srv.Close()
		assert.ErrorIs(t, err, ErrSubmissionFailed, "status %d", status)
		assert.Equal(t, MessageSubmissionFailed, UserMessage(err))
	}
}

func TestClient_SubmitContactValidatesBeforeRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	bad := []func(*models.ContactRequest){
		func(r *models.ContactRequest) { r.Name = "" },
		func(r *models.ContactRequest) { r.Email = "not-an-email" },
		func(r *models.ContactRequest) { r.Email = "Ana <ana@example.com>" },
		func(r *models.ContactRequest) { r.Category = " " },
		func(r *models.ContactRequest) { r.Subject = "" },
		func(r *models.ContactRequest) { r.Message = "" },
	}
	for i, mutate := range bad {
		req := validContact()
		mutate(&req)
		err := New(srv.URL, 0).SubmitContact(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidContact, "case %d", i)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, MessageGeneric, UserMessage(errors.New("other")))
	assert.Equal(t, MessageInvalidContact, UserMessage(ValidateContact(models.ContactRequest{})))
}
