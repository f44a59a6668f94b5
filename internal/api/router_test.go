package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/timmy/memeforge/internal/catalog"
	"github.com/timmy/memeforge/internal/config"
	"github.com/timmy/memeforge/internal/logger"
	"github.com/timmy/memeforge/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *service.MemeService) {
	t.Helper()

	cat := catalog.New()
	log := logger.NewDefault()
	rng := rand.New(rand.NewSource(1))

	selector := service.NewTemplateSelector(cat, nil, rng, log)
	captions := service.NewCaptionGenerator(nil, log)
	memes := service.NewMemeService(selector, captions, nil, nil, log)
	engagement := service.NewEngagementService(memes, nil, rng, log)
	prefs := service.NewPreferencesService(nil, log)
	coins := service.NewCoinService(memes, nil, nil, nil, nil, prefs, log)

	router := SetupRouter(&Services{
		Memes:       memes,
		Engagement:  engagement,
		Coins:       coins,
		Preferences: prefs,
		Catalog:     cat,
	}, &config.ServerConfig{Mode: "test"}, log)

	return router, memes
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRouter_GenerateMeme(t *testing.T) {
	router, _ := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/api/v1/memes/generate",
		map[string]string{"prompt": "when the build finally passes"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got error %q", env.Error)
	}

	var meme struct {
		ID           string `json:"id"`
		TemplateID   string `json:"templateId"`
		TemplateName string `json:"templateName"`
		ImageURL     string `json:"imageUrl"`
		Prompt       string `json:"prompt"`
	}
	if err := json.Unmarshal(env.Data, &meme); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if meme.ID == "" || meme.TemplateID == "" || meme.TemplateName == "" || meme.ImageURL == "" {
		t.Errorf("incomplete meme payload: %+v", meme)
	}
	if meme.Prompt != "when the build finally passes" {
		t.Errorf("unexpected prompt: %q", meme.Prompt)
	}

	// The generation payload keys are camelCase; the stored record's
	// snake_case keys must not leak through this endpoint.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		t.Fatalf("unmarshal raw data: %v", err)
	}
	if _, ok := raw["template_id"]; ok {
		t.Error("generation payload leaked snake_case template_id key")
	}
}

func TestRouter_GenerateMemeEmptyPrompt(t *testing.T) {
	router, _ := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodPost, "/api/v1/memes/generate",
		map[string]string{"prompt": "   "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
	if env.Error == "" {
		t.Error("expected an error message")
	}
}

func TestRouter_MemeNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/memes/meme-missing"},
		{http.MethodDelete, "/api/v1/memes/meme-missing"},
		{http.MethodPost, "/api/v1/memes/meme-missing/like"},
		{http.MethodGet, "/api/v1/memes/meme-missing/history"},
	} {
		w, env := doRequest(t, router, tc.method, tc.path, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s: expected 404, got %d", tc.method, tc.path, w.Code)
		}
		if env.Success {
			t.Errorf("%s %s: expected failure envelope", tc.method, tc.path)
		}
	}
}

func TestRouter_EngagementFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	_, env := doRequest(t, router, http.MethodPost, "/api/v1/memes/generate",
		map[string]string{"prompt": "engagement test"})
	var meme struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &meme); err != nil {
		t.Fatalf("unmarshal meme: %v", err)
	}

	w, env := doRequest(t, router, http.MethodPost, "/api/v1/memes/"+meme.ID+"/like", nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("like failed: %d %s", w.Code, w.Body.String())
	}

	w, env = doRequest(t, router, http.MethodPost, "/api/v1/memes/"+meme.ID+"/share",
		map[string]string{"platform": "twitter"})
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("share failed: %d %s", w.Code, w.Body.String())
	}

	var updated struct {
		Metrics struct {
			Likes  int64 `json:"likes"`
			Shares int64 `json:"shares"`
		} `json:"metrics"`
		Score int64 `json:"score"`
	}
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("unmarshal updated meme: %v", err)
	}
	if updated.Metrics.Likes != 1 || updated.Metrics.Shares != 1 {
		t.Errorf("unexpected counters: %+v", updated.Metrics)
	}
	if updated.Score != 8 {
		t.Errorf("expected score 8 for one like and one share, got %d", updated.Score)
	}
}

func TestRouter_CoinCreateRejectsIneligible(t *testing.T) {
	router, _ := newTestRouter(t)

	_, env := doRequest(t, router, http.MethodPost, "/api/v1/memes/generate",
		map[string]string{"prompt": "nobody liked this"})
	var meme struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &meme); err != nil {
		t.Fatalf("unmarshal meme: %v", err)
	}

	w, env := doRequest(t, router, http.MethodPost, "/api/v1/coins",
		map[string]string{"meme_id": meme.ID, "payout_recipient": "0xabc"})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestRouter_CoinCreateValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodPost, "/api/v1/coins",
		map[string]string{"payout_recipient": "0xabc"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing meme_id: expected 400, got %d", w.Code)
	}

	w, _ = doRequest(t, router, http.MethodPost, "/api/v1/coins",
		map[string]string{"meme_id": "meme-x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing payout: expected 400, got %d", w.Code)
	}
}

func TestRouter_Preferences(t *testing.T) {
	router, _ := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/preferences", nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("get preferences failed: %d", w.Code)
	}

	var prefs struct {
		DefaultChainID int64  `json:"default_chain_id"`
		Theme          string `json:"theme"`
	}
	if err := json.Unmarshal(env.Data, &prefs); err != nil {
		t.Fatalf("unmarshal preferences: %v", err)
	}
	if prefs.Theme != "light" {
		t.Errorf("expected default light theme, got %q", prefs.Theme)
	}

	w, env = doRequest(t, router, http.MethodPut, "/api/v1/preferences",
		map[string]interface{}{"theme": "dark"})
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("update preferences failed: %d %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(env.Data, &prefs); err != nil {
		t.Fatalf("unmarshal preferences: %v", err)
	}
	if prefs.Theme != "dark" {
		t.Errorf("expected dark theme after update, got %q", prefs.Theme)
	}

	w, _ = doRequest(t, router, http.MethodPut, "/api/v1/preferences",
		map[string]interface{}{"default_chain_id": 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for an unsupported chain, got %d", w.Code)
	}
}

func TestRouter_Templates(t *testing.T) {
	router, _ := newTestRouter(t)

	w, env := doRequest(t, router, http.MethodGet, "/api/v1/templates", nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("templates failed: %d", w.Code)
	}

	var payload struct {
		Templates  []json.RawMessage `json:"templates"`
		Categories []string          `json:"categories"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("unmarshal templates: %v", err)
	}
	if len(payload.Templates) == 0 || len(payload.Categories) == 0 {
		t.Error("expected a populated catalog")
	}
}

func TestRouter_AdminWithoutPersistence(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/admin/export", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a backup repository, got %d", w.Code)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/health", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected an X-Request-ID header")
	}
}
