package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/elsanchez/smart-links/internal/domain"
)

// DefaultBaseURL es la dirección por defecto del daemon
const DefaultBaseURL = "http://127.0.0.1:8000"

// GetDefaultBaseURL retorna la URL del daemon usando SMART_LINKS_ADDR si existe
func GetDefaultBaseURL() string {
	addr := strings.TrimSpace(os.Getenv("SMART_LINKS_ADDR"))
	if addr == "" {
		return DefaultBaseURL
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return strings.TrimRight(addr, "/")
}

// Client representa un cliente del daemon
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient crea un cliente con URL base personalizada
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Sin timeout global: la extracción puede tardar, se controla con ctx
		httpClient: &http.Client{},
	}
}

// NewDefaultClient crea un cliente con la URL por defecto
func NewDefaultClient() *Client {
	return NewClient(GetDefaultBaseURL())
}

// Response representa una respuesta del daemon
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Kind    string          `json:"kind,omitempty"`
}

// APIError es un error reportado por el daemon
type APIError struct {
	StatusCode int
	Message    string
	Kind       string
}

func (e *APIError) Error() string {
	return e.Message
}

// Stats son los contadores del historial
type Stats struct {
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// do envía una petición al daemon y decodifica data en out
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal payload: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect to daemon: %w (is daemon running?)", err)
	}
	defer httpResp.Body.Close()

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return fmt.Errorf("decode response (status %d): %w", httpResp.StatusCode, err)
	}

	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = http.StatusText(httpResp.StatusCode)
		}
		return &APIError{StatusCode: httpResp.StatusCode, Message: msg, Kind: resp.Kind}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// Ping verifica que el daemon está corriendo
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ping", nil, &result); err != nil {
		return err
	}
	if result.Message != "pong" {
		return fmt.Errorf("unexpected ping response: %q", result.Message)
	}
	return nil
}

// GetLinks pide al daemon los links de video y audio de una URL
func (c *Client) GetLinks(ctx context.Context, videoURL string) (*domain.ExtractionResult, error) {
	var result domain.ExtractionResult
	if err := c.do(ctx, http.MethodPost, "/api/links", map[string]string{"url": videoURL}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListLookups lista las consultas más recientes
func (c *Client) ListLookups(ctx context.Context, limit int) ([]*domain.Lookup, error) {
	path := "/api/lookups"
	if limit > 0 {
		path += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}

	var lookups []*domain.Lookup
	if err := c.do(ctx, http.MethodGet, path, nil, &lookups); err != nil {
		return nil, err
	}
	return lookups, nil
}

// GetLookup obtiene una entrada del historial
func (c *Client) GetLookup(ctx context.Context, id int64) (*domain.Lookup, error) {
	var lookup domain.Lookup
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/lookups/%d", id), nil, &lookup); err != nil {
		return nil, err
	}
	return &lookup, nil
}

// GetStats obtiene las estadísticas del historial
func (c *Client) GetStats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
