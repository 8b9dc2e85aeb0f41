package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/resume-fitter/internal/config"
	"github.com/jonathan/resume-fitter/internal/layout"
	"github.com/jonathan/resume-fitter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sparseDocumentJSON = `{
	"personal_info": {"name": "Ada Lovelace", "email": "ada@example.com"},
	"summary": "Engineer who likes short resumes.",
	"work_experience": [
		{"company": "Analytical Engines", "position": "Programmer", "startDate": "1842", "endDate": "1843",
		 "bullets": ["Wrote the first published algorithm", "Annotated the translation of Menabrea's paper"]}
	],
	"skills": ["Mathematics", "Notes"]
}`

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(config.Config{Page: "a3"})
	assert.Error(t, err)

	_, err = New(config.Config{CacheTTL: "later"})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, config.Config{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "a4", resp["page"])
}

func TestFitEndpoint(t *testing.T) {
	s := newTestServer(t, config.Config{})
	body := `{"document": ` + sparseDocumentJSON + `}`

	w := doJSON(t, s.Handler(), http.MethodPost, "/fit", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var first FitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.NotEmpty(t, first.RequestID)
	assert.False(t, first.Cached)
	require.NotNil(t, first.Result)
	assert.False(t, first.Result.Overflows)
	assert.GreaterOrEqual(t, first.Result.Config.BodyFontSize, float64(layout.MinFontSize))
	assert.LessOrEqual(t, first.Result.Config.BodyFontSize, float64(layout.MaxBodyFontSize))
	assert.InDelta(t, 1083.0, first.Result.UsableHeight, 1e-9)
	assert.NoError(t, first.Result.Config.Validate())

	// Same document with different whitespace hits the cache
	compact := `{"document":` + strings.Join(strings.Fields(sparseDocumentJSON), " ") + `}`
	w = doJSON(t, s.Handler(), http.MethodPost, "/fit", compact)
	require.Equal(t, http.StatusOK, w.Code)

	var second FitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.True(t, second.Cached)
	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.Equal(t, first.Result.Config, second.Result.Config)
	assert.Equal(t, 1, s.fitCache.ItemCount())
}

func TestFitEndpoint_PageAndFillChangeResult(t *testing.T) {
	s := newTestServer(t, config.Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/fit", `{"document": `+sparseDocumentJSON+`, "page": "letter", "fill_fraction": 0.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp FitResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, layout.Letter.UsableHeight(), resp.Result.UsableHeight, 1e-9)
	assert.InDelta(t, layout.Letter.UsableHeight()*0.5, resp.Result.TargetHeight, 1e-9)
}

func TestFitEndpoint_PageNameCaseInsensitive(t *testing.T) {
	s := newTestServer(t, config.Config{})

	for _, name := range []string{"Letter", "US-Letter", " letter "} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(t, s.Handler(), http.MethodPost, "/fit", `{"document": `+sparseDocumentJSON+`, "page": "`+name+`"}`)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp FitResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.InDelta(t, layout.Letter.UsableHeight(), resp.Result.UsableHeight, 1e-9)
		})
	}
}

func TestNew_MixedCasePage(t *testing.T) {
	s := newTestServer(t, config.Config{Page: "Letter"})

	w := doJSON(t, s.Handler(), http.MethodPost, "/estimate", `{"document": `+sparseDocumentJSON+`, "sizing": {"headerFontSize": 14, "bodyFontSize": 11, "bulletFontSize": 10.5, "lineHeight": 13.8, "sectionSpacing": 13, "bulletSpacing": 2}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, layout.Letter.UsableHeight(), resp.UsableHeight, 1e-9)
}

func TestFitEndpoint_BadRequests(t *testing.T) {
	s := newTestServer(t, config.Config{})

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"document": `},
		{name: "missing document", body: `{"page": "a4"}`},
		{name: "document fails schema", body: `{"document": {"work_experience": "not a list"}}`},
		{name: "document is null", body: `{"document": null}`},
		{name: "unknown page", body: `{"document": {}, "page": "a3"}`},
		{name: "fill out of range", body: `{"document": {}, "fill_fraction": 1.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s.Handler(), http.MethodPost, "/fit", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestSeedEndpoint(t *testing.T) {
	s := newTestServer(t, config.Config{})

	w := doJSON(t, s.Handler(), http.MethodPost, "/seed", `{"document": `+sparseDocumentJSON+`}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp SeedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
	assert.NoError(t, resp.Sizing.Validate())

	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(sparseDocumentJSON), &doc))
	want, err := layout.SeedFromMetrics(&doc)
	require.NoError(t, err)
	assert.Equal(t, want, resp.Sizing)
}

func TestEstimateEndpoint(t *testing.T) {
	s := newTestServer(t, config.Config{})
	sizing := types.SizingConfig{
		HeaderFontSize: 14,
		BodyFontSize:   11,
		BulletFontSize: 10.5,
		LineHeight:     13.8,
		SectionSpacing: 13,
		BulletSpacing:  2,
	}
	sizingJSON, err := json.Marshal(sizing)
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.WriteString(`{"document": ` + sparseDocumentJSON + `, "sizing": `)
	buf.Write(sizingJSON)
	buf.WriteString(`}`)

	w := doJSON(t, s.Handler(), http.MethodPost, "/estimate", buf.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp EstimateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var doc types.Document
	require.NoError(t, json.Unmarshal([]byte(sparseDocumentJSON), &doc))
	assert.InDelta(t, layout.EstimateHeight(&doc, sizing), resp.PredictedHeight, 1e-9)
	assert.InDelta(t, 1083.0, resp.UsableHeight, 1e-9)
	assert.InDelta(t, math.Round(resp.PredictedHeight/resp.UsableHeight*1000)/10, resp.FillPercentage, 1e-9)
	assert.Equal(t, resp.FillPercentage, math.Round(resp.FillPercentage*10)/10)
	assert.False(t, resp.Overflows)
}

func TestEstimateEndpoint_InvalidSizing(t *testing.T) {
	s := newTestServer(t, config.Config{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing sizing", body: `{"document": {}}`},
		{name: "bullet not body minus half", body: `{"document": {}, "sizing": {"headerFontSize": 14, "bodyFontSize": 11, "bulletFontSize": 11, "lineHeight": 13, "sectionSpacing": 10, "bulletSpacing": 2}}`},
		{name: "zero body", body: `{"document": {}, "sizing": {"headerFontSize": 14, "bodyFontSize": 0, "bulletFontSize": 0, "lineHeight": 13}}`},
		{name: "body far above max", body: `{"document": {}, "sizing": {"headerFontSize": 45, "bodyFontSize": 40, "bulletFontSize": 39.5, "lineHeight": 50, "sectionSpacing": 10, "bulletSpacing": 2}}`},
		{name: "body below min", body: `{"document": {}, "sizing": {"headerFontSize": 14, "bodyFontSize": 7, "bulletFontSize": 6.5, "lineHeight": 9, "sectionSpacing": 10, "bulletSpacing": 2}}`},
		{name: "header above 22", body: `{"document": {}, "sizing": {"headerFontSize": 23, "bodyFontSize": 11, "bulletFontSize": 10.5, "lineHeight": 13, "sectionSpacing": 10, "bulletSpacing": 2}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, s.Handler(), http.MethodPost, "/estimate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, config.Config{RateLimitPerMinute: 2})

	for i := 0; i < 2; i++ {
		w := doJSON(t, s.Handler(), http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doJSON(t, s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, config.Config{})

	w := doJSON(t, s.Handler(), http.MethodOptions, "/fit", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, config.Config{})

	w := doJSON(t, s.Handler(), http.MethodGet, "/fit", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
