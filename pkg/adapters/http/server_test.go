package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/folio"
	"github.com/aretw0/folio/internal/testutils"
	folioHTTP "github.com/aretw0/folio/pkg/adapters/http"
	"github.com/aretw0/folio/pkg/adapters/memory"
	"github.com/aretw0/folio/pkg/adapters/offline"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/observability"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, engine ports.ContentEngine, opts ...folioHTTP.Option) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(folioHTTP.NewHandler(engine, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestCreateRun_Offline(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	store := memory.NewStore()
	eng, err := folio.New(
		folio.WithGenerator(offline.New()),
		folio.WithSink(store),
		folio.WithLifecycleHooks(metrics.Hooks()),
	)
	require.NoError(t, err)
	srv := newServer(t, eng, folioHTTP.WithStore(store), folioHTTP.WithGatherer(reg))

	body, _ := json.Marshal(folioHTTP.RunRequest{Input: testutils.SampleInput})
	resp, out := post(t, srv.URL+"/runs", string(body))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	runID := out["run_id"].(string)
	assert.NotEmpty(t, runID)
	assert.Equal(t, false, out["degraded"])
	artifacts := out["artifacts"].(map[string]any)
	faq := artifacts["faq"].(map[string]any)
	assert.Equal(t, "1.0", faq["meta"].(map[string]any)["version"])

	t.Run("Stored Run", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/runs/" + runID)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("List Runs", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/runs")
		require.NoError(t, err)
		defer resp.Body.Close()
		var list map[string][]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		assert.Equal(t, []string{runID}, list["runs"])
	})

	t.Run("Unknown Run", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/runs/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Metrics", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		text, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(text), `folio_runs_total{outcome="completed"} 1`)
	})
}

func TestCreateRun_BadRequests(t *testing.T) {
	eng, err := folio.New(folio.WithGenerator(offline.New()))
	require.NoError(t, err)
	srv := newServer(t, eng, folioHTTP.WithMaxBodyBytes(64))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Malformed JSON", `{"input":`, http.StatusBadRequest},
		{"Empty Input", `{"input":"   "}`, http.StatusBadRequest},
		{"Too Large", `{"input":"` + strings.Repeat("x", 128) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := post(t, srv.URL+"/runs", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, out, "error")
		})
	}
}

// stubEngine fails every run with a fixed error.
type stubEngine struct {
	err      error
	degraded domain.State
}

func (s stubEngine) Run(context.Context, string) (domain.State, error) { return domain.State{}, s.err }
func (s stubEngine) Degrade(_ context.Context, best domain.State) (domain.State, error) {
	out := s.degraded
	out.RunID = best.RunID
	return out, nil
}
func (s stubEngine) Inspect() []domain.Transition {
	return []domain.Transition{
		{From: "extract", To: "generate"},
		{From: "validate", To: "generate", Branch: domain.BranchRetry},
	}
}

func TestCreateRun_RunErrors(t *testing.T) {
	tests := []struct {
		kind   domain.ErrorKind
		status int
	}{
		{domain.KindContractViolation, http.StatusUnprocessableEntity},
		{domain.KindExhaustedRetries, http.StatusUnprocessableEntity},
		{domain.KindStepLimit, http.StatusInternalServerError},
		{domain.KindStepFailed, http.StatusBadGateway},
		{domain.KindCanceled, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			srv := newServer(t, stubEngine{err: &domain.RunError{Kind: tt.kind, Step: domain.StepValidate, Attempts: 3}})

			resp, out := post(t, srv.URL+"/runs", `{"input":"Product Name: X"}`)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := out["error"].(map[string]any)
			assert.Equal(t, string(tt.kind), body["kind"])
			assert.Equal(t, "validate", body["step"])
		})
	}
}

func TestCreateRun_Degrade(t *testing.T) {
	best := domain.State{RunID: "r-9"}
	srv := newServer(t, stubEngine{
		err:      &domain.RunError{Kind: domain.KindExhaustedRetries, Step: domain.StepValidate, Best: &best},
		degraded: domain.State{Degraded: true, History: []string{"analyze", "render"}},
	})

	resp, out := post(t, srv.URL+"/runs", `{"input":"Product Name: X","degrade":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "r-9", out["run_id"])
	assert.Equal(t, true, out["degraded"])
	assert.Nil(t, out["artifacts"].(map[string]any)["faq"])
}

func TestGetGraph(t *testing.T) {
	srv := newServer(t, stubEngine{})

	resp, err := http.Get(srv.URL + "/graph")
	require.NoError(t, err)
	defer resp.Body.Close()
	var transitions []domain.Transition
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&transitions))
	assert.Len(t, transitions, 2)

	resp, err = http.Get(srv.URL + "/graph?format=mermaid")
	require.NoError(t, err)
	defer resp.Body.Close()
	text, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), `extract(("extract"))`)
	assert.Contains(t, string(text), `validate -. "retry" .-> generate`)
}

func TestRunsWithoutStore(t *testing.T) {
	srv := newServer(t, stubEngine{})

	resp, err := http.Get(srv.URL + "/runs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndInfo(t *testing.T) {
	srv := newServer(t, stubEngine{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer resp.Body.Close()
	var info map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, folio.Version, info["version"])
}
