package probe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_Accepted(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	p := New(server.URL)
	res, err := p.Send(context.Background())

	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.ContentType)
	assert.Equal(t, 15, res.BodyBytes)
	assert.Equal(t, "application/x-protobuf", gotContentType)
	assert.Equal(t, []byte{0x0A, 0x00}, gotBody)
}

func TestSend_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer server.Close()

	res, err := New(server.URL).Send(context.Background())

	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSend_Unreachable(t *testing.T) {
	p := New("http://127.0.0.1:1")
	_, err := p.Send(context.Background())
	assert.Error(t, err)
}

func TestWaitReachable_ImmediatelyUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, New(server.URL).WaitReachable(ctx))
}

func TestWaitReachable_TimesOut(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	err := New("http://127.0.0.1:1").WaitReachable(ctx)
	assert.Error(t, err)
}
