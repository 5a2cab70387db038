package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/treeoracle"
	httpadapter "github.com/aretw0/treeoracle/pkg/adapters/http"
	"github.com/aretw0/treeoracle/pkg/adapters/memory"
	"github.com/aretw0/treeoracle/pkg/domain"
	"github.com/aretw0/treeoracle/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) (http.Handler, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	oracle := treeoracle.New(treeoracle.WithStore(store), treeoracle.WithHooks(metrics.Hooks()))
	h := httpadapter.NewHandler(oracle, store,
		httpadapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
		httpadapter.WithVersion("test"),
	)
	return h, store
}

func do(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h, _ := newServer(t)
	w := do(h, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGrammars(t *testing.T) {
	h, _ := newServer(t)

	w := do(h, http.MethodGet, "/grammars", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []httpadapter.GrammarSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "logical", list[0].Name)
	assert.Equal(t, []string{"S"}, list[0].Symbols)

	w = do(h, http.MethodGet, "/grammars/logical", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail httpadapter.GrammarDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Rules, 5)
	assert.Equal(t, 0.20, detail.Rules[0].Weight)
	assert.Equal(t, "not(S)", detail.Rules[0].Template.String())

	w = do(h, http.MethodGet, "/grammars/rna?format=mermaid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD"))

	w = do(h, http.MethodGet, "/grammars/fractal", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSamplesLifecycle(t *testing.T) {
	h, store := newServer(t)

	w := do(h, http.MethodPost, "/samples", httpadapter.SampleRequest{Grammar: "rna", Count: 3, Seed: 10})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp httpadapter.SampleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Samples, 3)
	assert.Equal(t, int64(12), resp.Samples[2].Seed)
	assert.Equal(t, 3, store.Len())

	w = do(h, http.MethodGet, "/samples", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ids map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ids))
	assert.Len(t, ids["ids"], 3)

	id := resp.Samples[0].ID
	w = do(h, http.MethodGet, "/samples/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Sample
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, resp.Samples[0].Tree.String(), got.Tree.String())

	w = do(h, http.MethodDelete, "/samples/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(h, http.MethodGet, "/samples/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSamples_Reproducible(t *testing.T) {
	h, _ := newServer(t)
	req := httpadapter.SampleRequest{Grammar: "logical", Count: 5, Seed: 3}

	a := do(h, http.MethodPost, "/samples", req)
	b := do(h, http.MethodPost, "/samples", req)
	require.Equal(t, http.StatusCreated, a.Code)
	require.Equal(t, http.StatusCreated, b.Code)

	var ra, rb httpadapter.SampleResponse
	require.NoError(t, json.Unmarshal(a.Body.Bytes(), &ra))
	require.NoError(t, json.Unmarshal(b.Body.Bytes(), &rb))
	require.Len(t, rb.Samples, len(ra.Samples))
	for i := range ra.Samples {
		assert.Equal(t, ra.Samples[i].ID, rb.Samples[i].ID)
		assert.Equal(t, ra.Samples[i].Tree.String(), rb.Samples[i].Tree.String())
		assert.Equal(t, ra.Samples[i].Score, rb.Samples[i].Score)
	}
}

func TestCreateSamples_BadRequests(t *testing.T) {
	h, _ := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/samples", strings.NewReader("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodPost, "/samples", httpadapter.SampleRequest{Grammar: "rna", Count: httpadapter.MaxBatch + 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodPost, "/samples", httpadapter.SampleRequest{Grammar: "fractal"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "fractal")
}

func TestMetricsRoute(t *testing.T) {
	h, _ := newServer(t)
	_ = do(h, http.MethodPost, "/samples", httpadapter.SampleRequest{Grammar: "logical", Count: 2})

	w := do(h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `treeoracle_oracle_samples_total{grammar="logical"} 2`)
}

type failingStore struct{ memory.Store }

func (*failingStore) List(context.Context) ([]string, error) { return nil, errors.New("disk on fire") }

func TestListSamples_StoreFailure(t *testing.T) {
	h := httpadapter.NewHandler(treeoracle.New(), &failingStore{})
	w := do(h, http.MethodGet, "/samples", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNilStore(t *testing.T) {
	h := httpadapter.NewHandler(treeoracle.New(), nil)

	w := do(h, http.MethodGet, "/samples", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ids":[]}`, w.Body.String())

	w = do(h, http.MethodGet, "/samples/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
