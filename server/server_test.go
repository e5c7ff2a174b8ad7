package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/promptsmith"
	"github.com/fwojciec/promptsmith/mock"
	"github.com/fwojciec/promptsmith/server"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const reply = "===PROMPT_START===\nI am a nurse planning shift handovers.\n===PROMPT_END===\n===TOOL_START===\nTOOL: ChatGPT Free (free)\nREASONING: Quick structured checklists.\n===TOOL_END==="

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newServer wires a real Service over gen, as main does.
func newServer(gen *mock.Generator, opts ...server.Option) *server.Server {
	svc := promptsmith.NewService(gen)
	return server.New(svc.Generate, zap.NewNop(), promptsmith.DefaultPositions, opts...)
}

func replying(raw string, err error) *mock.Generator {
	return &mock.Generator{
		GenerateFn: func(context.Context, promptsmith.GenerationRequest, string) (string, error) {
			return raw, err
		},
	}
}

func postGenerate(t *testing.T, srv http.Handler, key, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(server.KeyHeader, key)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (msg, kind string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error, body.Kind
}

func TestServer_Index(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newServer(replying(reply, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "sessionStorage")
	assert.Contains(t, rec.Body.String(), "X-Api-Key")
}

func TestServer_ErrorBodiesAreJSON(t *testing.T) {
	t.Parallel()

	// The page parses only JSON bodies and reports anything else by status.
	rec := httptest.NewRecorder()
	newServer(replying(reply, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), `resp.headers.get("content-type")`)

	rec = postGenerate(t, newServer(replying("", &promptsmith.Error{Kind: promptsmith.KindUnknownServerError, Status: 500})), "k", `{"role":"Nurse","task":"Plan"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	msg, _ := decodeError(t, rec)
	assert.NotEmpty(t, msg)
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newServer(replying(reply, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)
}

func TestServer_Positions(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newServer(replying(reply, nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/positions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Positions []string `json:"positions"`
		Other     string   `json:"other"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, promptsmith.DefaultPositions, body.Positions)
	assert.Equal(t, "Other", body.Other)
}

func TestServer_RequestID(t *testing.T) {
	t.Parallel()

	srv := newServer(replying(reply, nil))

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestServer_Generate(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		var gotKey string
		var gotReq promptsmith.GenerationRequest
		gen := &mock.Generator{
			GenerateFn: func(_ context.Context, req promptsmith.GenerationRequest, credential string) (string, error) {
				gotKey, gotReq = credential, req
				return reply, nil
			},
		}
		rec := postGenerate(t, newServer(gen), " my-key ", `{"role":"Nurse","task":"Plan shift handovers"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "I am a nurse planning shift handovers.", body["prompt"])
		assert.Equal(t, "ChatGPT Free (free)", body["tool_name"])
		assert.Equal(t, "Quick structured checklists.", body["tool_reasoning"])
		assert.Equal(t, "my-key", gotKey)
		assert.Equal(t, "Nurse", gotReq.Role)
		assert.Equal(t, "Plan shift handovers", gotReq.Task)
	})

	t.Run("missing key fails locally", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int32
		gen := &mock.Generator{
			GenerateFn: func(context.Context, promptsmith.GenerationRequest, string) (string, error) {
				calls.Add(1)
				return reply, nil
			},
		}
		rec := postGenerate(t, newServer(gen), "", `{"role":"Nurse","task":"Plan"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		msg, kind := decodeError(t, rec)
		assert.Equal(t, "local_validation", kind)
		assert.Equal(t, promptsmith.ErrNoCredential.Error(), msg)
		assert.Zero(t, calls.Load())
	})

	t.Run("missing input fails locally", func(t *testing.T) {
		t.Parallel()
		rec := postGenerate(t, newServer(replying(reply, nil)), "k", `{"role":"Nurse","task":"  "}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		msg, _ := decodeError(t, rec)
		assert.Equal(t, promptsmith.ErrMissingInput.Error(), msg)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()
		rec := postGenerate(t, newServer(replying(reply, nil)), "k", `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		_, kind := decodeError(t, rec)
		assert.Equal(t, "local_validation", kind)
	})

	t.Run("upstream errors map to statuses", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			err    error
			status int
			kind   string
		}{
			{&promptsmith.Error{Kind: promptsmith.KindAuthFailure, Status: 403, Detail: "API key invalid"}, http.StatusForbidden, "auth_failure"},
			{&promptsmith.Error{Kind: promptsmith.KindRateLimited, Status: 429}, http.StatusTooManyRequests, "rate_limited"},
			{&promptsmith.Error{Kind: promptsmith.KindBadRequest, Status: 400}, http.StatusBadRequest, "bad_request"},
			{&promptsmith.Error{Kind: promptsmith.KindEmptyReply}, http.StatusBadGateway, "empty_reply"},
			{&promptsmith.Error{Kind: promptsmith.KindNetworkFailure}, http.StatusBadGateway, "network_failure"},
			{&promptsmith.Error{Kind: promptsmith.KindUnknownServerError, Status: 500}, http.StatusBadGateway, "unknown_server_error"},
		}
		for _, tt := range tests {
			rec := postGenerate(t, newServer(replying("", tt.err)), "k", `{"role":"Nurse","task":"Plan"}`)
			assert.Equal(t, tt.status, rec.Code, tt.kind)
			msg, kind := decodeError(t, rec)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.err.Error(), msg)
		}
	})

	t.Run("reply without prompt is malformed", func(t *testing.T) {
		t.Parallel()
		rec := postGenerate(t, newServer(replying("no markers here", nil)), "k", `{"role":"Nurse","task":"Plan"}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		_, kind := decodeError(t, rec)
		assert.Equal(t, "malformed_reply", kind)
	})
}

func TestServer_RateLimit(t *testing.T) {
	t.Parallel()

	srv := newServer(replying(reply, nil), server.WithRateLimit(1))

	rec := postGenerate(t, srv, "k", `{"role":"Nurse","task":"Plan"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postGenerate(t, srv, "k", `{"role":"Nurse","task":"Plan again"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	msg, kind := decodeError(t, rec)
	assert.Equal(t, "rate_limited", kind)
	assert.Contains(t, msg, "1 requests per minute")
}

func TestServer_CollapsesIdenticalRequests(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	gen := &mock.Generator{
		GenerateFn: func(context.Context, promptsmith.GenerationRequest, string) (string, error) {
			if calls.Add(1) == 1 {
				close(started)
			}
			<-release
			return reply, nil
		},
	}
	srv := newServer(gen)

	const n = 5
	codes := make([]int, n)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		codes[0] = postGenerate(t, srv, "k", `{"role":"Nurse","task":"Plan"}`).Code
	}()
	<-started
	for i := 1; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes[i] = postGenerate(t, srv, "k", `{"role":"Nurse","task":"Plan"}`).Code
		}()
	}
	// Give the followers time to join the in-flight call.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
}
