package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/extractor"
	"github.com/elsanchez/smart-links/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLinks struct {
	result *domain.ExtractionResult
	err    error
	urls   []string
}

func (f *fakeLinks) Lookup(ctx context.Context, url string) (*domain.ExtractionResult, error) {
	f.urls = append(f.urls, url)
	return f.result, f.err
}

type fakeHistory struct {
	mu      sync.Mutex
	lookups []*domain.Lookup
	err     error
}

var _ repository.LookupRepository = (*fakeHistory)(nil)

func (f *fakeHistory) Create(ctx context.Context, l *domain.Lookup) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = int64(len(f.lookups) + 1)
	f.lookups = append(f.lookups, l)
	return l.ID, nil
}

func (f *fakeHistory) GetByID(ctx context.Context, id int64) (*domain.Lookup, error) {
	for _, l := range f.lookups {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", repository.ErrLookupNotFound, id)
}

func (f *fakeHistory) GetRecent(ctx context.Context, limit int) ([]*domain.Lookup, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Lookup
	for i := len(f.lookups) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.lookups[i])
	}
	return out, nil
}

func (f *fakeHistory) CountByStatus(ctx context.Context, status domain.LookupStatus) (int, error) {
	n := 0
	for _, l := range f.lookups {
		if l.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeHistory) CountTotal(ctx context.Context) (int, error) {
	return len(f.lookups), nil
}

func (f *fakeHistory) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func sampleResult() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		Title: "Test Video",
		VideoLinks: []domain.VideoLink{
			{Resolution: "640x360", Size: "1.00 MB", URL: "https://cdn.example/v1"},
		},
		AudioLinks: []domain.AudioLink{
			{Bitrate: "160 kbps", Size: "2.00 MB", URL: "https://cdn.example/a1"},
			{Bitrate: "Unknown Bitrate", Size: "Unknown Size", URL: "https://cdn.example/a2"},
		},
	}
}

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func TestIndex(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeLinks{}, nil)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="youtube_link"`) {
		t.Error("form field missing from index page")
	}
}

func TestSubmit_Success(t *testing.T) {
	links := &fakeLinks{result: sampleResult()}
	s := NewServer("127.0.0.1:0", links, nil)

	rec := postForm(t, s.Handler(), url.Values{"youtube_link": {" https://youtu.be/abc "}})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := rec.Body.String()
	for _, want := range []string{"Test Video", "640x360", "160 kbps", "Unknown Bitrate", "https://cdn.example/a2"} {
		if !strings.Contains(body, want) {
			t.Errorf("result page missing %q", want)
		}
	}

	if len(links.urls) != 1 || links.urls[0] != "https://youtu.be/abc" {
		t.Errorf("unexpected lookup urls: %v", links.urls)
	}
}

func TestSubmit_MissingField(t *testing.T) {
	links := &fakeLinks{}
	s := NewServer("127.0.0.1:0", links, nil)

	for _, values := range []url.Values{{}, {"youtube_link": {"  "}}} {
		rec := postForm(t, s.Handler(), values)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("expected 422 for %v, got %d", values, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "youtube_link is required") {
			t.Error("error message not rendered")
		}
	}

	if len(links.urls) != 0 {
		t.Error("extractor should not be called without a link")
	}
}

func TestSubmit_ExtractionFailure(t *testing.T) {
	msg := "ERROR: [youtube] abc: Video unavailable"
	links := &fakeLinks{err: &extractor.ExtractionFailure{Kind: extractor.KindUnavailable, Message: msg}}
	s := NewServer("127.0.0.1:0", links, nil)

	rec := postForm(t, s.Handler(), url.Values{"youtube_link": {"https://youtu.be/abc"}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Video unavailable") {
		t.Errorf("failure message not rendered: %s", rec.Body.String())
	}
}

func TestSubmit_ErrorAsJSON(t *testing.T) {
	msg := `ERROR: 'x' is not a valid URL. Set --default-search "ytsearch" (or run  yt-dlp "ytsearch:x" ) to search YouTube`
	tests := []struct {
		name   string
		values url.Values
		links  *fakeLinks
		status int
		detail string
	}{
		{
			"extraction failure",
			url.Values{"youtube_link": {"x"}},
			&fakeLinks{err: &extractor.ExtractionFailure{Kind: extractor.KindInvalidURL, Message: msg}},
			http.StatusBadRequest,
			msg,
		},
		{
			"missing field",
			url.Values{},
			&fakeLinks{},
			http.StatusUnprocessableEntity,
			"youtube_link is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer("127.0.0.1:0", tt.links, nil)

			req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(tt.values.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Accept", "application/json")
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}

			var body struct {
				Detail string `json:"detail"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode %q: %v", rec.Body.String(), err)
			}
			if body.Detail != tt.detail {
				t.Errorf("expected detail %q, got %q", tt.detail, body.Detail)
			}
		})
	}
}

func TestAPI_Ping(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeLinks{}, nil)

	rec, resp := doJSON(t, s.Handler(), http.MethodGet, "/api/ping", "")
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected ping response: %d %+v", rec.Code, resp)
	}
	if !strings.Contains(rec.Body.String(), `"pong"`) {
		t.Errorf("expected pong, got %s", rec.Body.String())
	}
	if len(rec.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("expected generated request id, got %q", rec.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "abc" {
		t.Errorf("expected request id to be echoed, got %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestAPI_Links(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeLinks{result: sampleResult()}, nil)

	rec, resp := doJSON(t, s.Handler(), http.MethodPost, "/api/links", `{"url":"https://youtu.be/abc"}`)
	if rec.Code != http.StatusOK || !resp.Success {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data domain.ExtractionResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatal(err)
	}
	if envelope.Data.Title != "Test Video" || len(envelope.Data.AudioLinks) != 2 {
		t.Errorf("unexpected data: %+v", envelope.Data)
	}
	if !strings.Contains(rec.Body.String(), `"video_title"`) || !strings.Contains(rec.Body.String(), `"abr"`) {
		t.Errorf("unexpected json names: %s", rec.Body.String())
	}
}

func TestAPI_LinksErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantKind string
		wantErr  string
	}{
		{"bad json", `{`, nil, "", "invalid payload"},
		{"missing url", `{}`, nil, "", "url is required"},
		{
			"extraction failure",
			`{"url":"https://example.com/x"}`,
			&extractor.ExtractionFailure{Kind: extractor.KindUnsupported, Message: "ERROR: Unsupported URL: https://example.com/x"},
			"unsupported",
			"ERROR: Unsupported URL: https://example.com/x",
		},
		{"plain error", `{"url":"https://youtu.be/x"}`, errors.New("boom"), "unknown", "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer("127.0.0.1:0", &fakeLinks{err: tt.err}, nil)

			rec, resp := doJSON(t, s.Handler(), http.MethodPost, "/api/links", tt.body)
			if rec.Code != http.StatusBadRequest || resp.Success {
				t.Fatalf("expected 400 failure, got %d %+v", rec.Code, resp)
			}
			if !strings.Contains(resp.Error, tt.wantErr) {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantErr)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp.Kind, tt.wantKind)
			}
		})
	}
}

func TestAPI_Lookups(t *testing.T) {
	history := &fakeHistory{}
	ctx := context.Background()
	history.Create(ctx, &domain.Lookup{URL: "https://youtu.be/a", Status: domain.LookupCompleted})
	history.Create(ctx, &domain.Lookup{URL: "https://youtu.be/b", Status: domain.LookupFailed, ErrorMessage: "nope"})
	history.Create(ctx, &domain.Lookup{URL: "https://youtu.be/c", Status: domain.LookupCompleted})

	s := NewServer("127.0.0.1:0", &fakeLinks{}, history)
	h := s.Handler()

	rec, _ := doJSON(t, h, http.MethodGet, "/api/lookups?limit=2", "")
	var list struct {
		Data []domain.Lookup `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &list)
	if rec.Code != http.StatusOK || len(list.Data) != 2 || list.Data[0].URL != "https://youtu.be/c" {
		t.Errorf("unexpected list: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/api/lookups?limit=zero", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", rec.Code)
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/api/lookups/2", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "nope") {
		t.Errorf("unexpected lookup: %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/api/lookups/99", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/api/lookups/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad id, got %d", rec.Code)
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/api/stats", "")
	var stats struct {
		Data Stats `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &stats)
	if stats.Data != (Stats{Completed: 2, Failed: 1, Total: 3}) {
		t.Errorf("unexpected stats: %+v", stats.Data)
	}
}

func TestAPI_HistoryDisabled(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeLinks{}, nil)

	for _, path := range []string{"/api/lookups", "/api/lookups/1", "/api/stats"} {
		rec, resp := doJSON(t, s.Handler(), http.MethodGet, path, "")
		if rec.Code != http.StatusServiceUnavailable || resp.Error == "" {
			t.Errorf("%s: expected 503, got %d", path, rec.Code)
		}
	}
}

func TestAPI_ListError(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeLinks{}, &fakeHistory{err: errors.New("db closed")})

	rec, resp := doJSON(t, s.Handler(), http.MethodGet, "/api/lookups", "")
	if rec.Code != http.StatusInternalServerError || !strings.Contains(resp.Error, "db closed") {
		t.Errorf("unexpected response: %d %+v", rec.Code, resp)
	}
}

func TestServer_StartStop(t *testing.T) {
	s := NewServer("127.0.0.1:0", &fakeLinks{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/api/ping")
	if err != nil {
		t.Fatalf("GET ping: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Errorf("Stop failed: %v", err)
	}
}
