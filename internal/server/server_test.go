package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/buildmyfolio/internal/engine"
	"github.com/jonathan/buildmyfolio/internal/remote"
	"github.com/jonathan/buildmyfolio/internal/server/ratelimit"
	"github.com/jonathan/buildmyfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJD = "Full Stack Developer with React, Python, Docker and PostgreSQL experience."

func newTestServer(t *testing.T, opts ...engine.Option) *httptest.Server {
	t.Helper()
	s := New(Config{
		Engine:    engine.New(opts...),
		RateLimit: &ratelimit.Config{Enabled: false},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.rateLimiter.Stop()
	})
	return ts
}

func testProfile() types.Profile {
	return types.Profile{
		Name:       "Priya Sharma",
		Email:      "priya.sharma@email.com",
		TargetRole: "Full Stack Developer",
		Skills:     []string{"Python", "React", "Docker"},
		Education:  []types.Education{{Institution: "IIT Hyderabad", Degree: "B.Tech", Field: "Computer Science", StartYear: 2021}},
	}
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	var root map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&root))
	assert.Equal(t, "1.0.0", root["version"])
	assert.Contains(t, root["message"], "running")

	resp, err = http.Get(ts.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGenerate(t *testing.T) {
	ts := newTestServer(t)
	req := types.NewGenerateRequest(testProfile(), types.DefaultOptions(), testJD, "", types.ToneProfessional)

	resp, body := postJSON(t, ts.URL+"/api/generate", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	assert.NotNil(t, data["resume"])
	assert.NotNil(t, data["portfolio"])
	assert.NotNil(t, data["skills_analysis"])
	assert.Nil(t, data["cover_letter"])
}

func TestGenerate_SatisfiesRemoteClient(t *testing.T) {
	ts := newTestServer(t)
	client := remote.NewClient(ts.URL)

	bundle, err := client.Generate(context.Background(), types.NewGenerateRequest(testProfile(), types.DefaultOptions(), testJD, "Google", types.ToneCreative))
	require.NoError(t, err)
	require.NotNil(t, bundle.CoverLetter)
	assert.Equal(t, "Priya Sharma", bundle.CoverLetter.Signature)
	assert.Equal(t, types.ToneCreative, bundle.Resume.Metadata.Tone)

	score, err := client.ATSScore(context.Background(), types.ATSRequest{ResumeText: "Python React developer. Built APIs.", JobDescription: testJD})
	require.NoError(t, err)
	assert.Contains(t, score.MatchedKeywords, "Python")
}

func TestGenerate_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/generate", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := postJSON(t, ts.URL+"/api/ats-score", map[string]string{"resume_text": "only resume"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestATSScore(t *testing.T) {
	ts := newTestServer(t)
	resp, body := postJSON(t, ts.URL+"/api/ats-score", types.ATSRequest{
		ResumeText:     "Summary: Python developer. Skills: React, Docker. Education: university. Experience: built APIs, improved latency 40%.",
		JobDescription: testJD,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]any)
	assert.Greater(t, data["overall_score"].(float64), 0.0)
	breakdown := data["breakdown"].(map[string]any)
	assert.Len(t, breakdown, 4)
}

func TestEnhanceAndSuggest(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/enhance-summary", testProfile())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body["summary"].(string), "Results-driven Full Stack Developer"))

	resp, body = postJSON(t, ts.URL+"/api/suggest-skills", testProfile())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	suggestions := body["suggestions"].([]any)
	assert.NotEmpty(t, suggestions)
}

func TestImproveBullets(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postJSON(t, ts.URL+"/api/improve-bullets", types.ImproveBulletsRequest{
		Bullets: []string{"Built a payments API serving 2M requests", "wrote docs"},
		Role:    "Backend Engineer",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	improved := body["improved_bullets"].([]any)
	require.Len(t, improved, 2)
	assert.Equal(t, "Built a payments API serving 2M requests", improved[0])

	resp, _ = postJSON(t, ts.URL+"/api/improve-bullets", map[string]any{"bullets": make([]string, 51)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTemplates(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/templates")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Templates []types.ResumeTemplate `json:"templates"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Templates, 5)
	assert.Equal(t, "modern", body.Templates[0].ID)
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/generate", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())
	cleaned := false

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, slog.New(slog.NewTextHandler(io.Discard, nil)), func() { cleaned = true }) }()
	cancel()

	require.NoError(t, <-done)
	assert.True(t, cleaned)
}

func TestSSEWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sse, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("step", map[string]int{"step": 1}))
	sse.WriteComplete(map[string]bool{"ok": true})
	sse.WriteError("boom")

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: step\ndata: {\"step\":1}\n\nevent: complete\ndata: {\"ok\":true}\n\nevent: error\ndata: {\"error\":\"boom\"}\n\n", rec.Body.String())
}
