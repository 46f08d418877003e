package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/repository"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LinkService resuelve una URL en links de video y audio
type LinkService interface {
	Lookup(ctx context.Context, url string) (*domain.ExtractionResult, error)
}

// Server es el servidor HTTP (formulario web + API JSON)
type Server struct {
	addr     string
	links    LinkService
	history  repository.LookupRepository
	engine   *gin.Engine
	server   *http.Server
	listener net.Listener
}

// Response representa una respuesta de la API
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

// NewServer crea un nuevo servidor; history puede ser nil si el historial está deshabilitado
func NewServer(addr string, links LinkService, history repository.LookupRepository) *Server {
	s := &Server{
		addr:    addr,
		links:   links,
		history: history,
	}

	tmpl := template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(loggingMiddleware())
	s.engine.SetHTMLTemplate(tmpl)

	// Páginas
	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/submit", s.handleSubmit)

	// API
	api := s.engine.Group("/api")
	api.GET("/ping", s.handlePing)
	api.POST("/links", s.handleLinks)
	api.GET("/lookups", s.handleListLookups)
	api.GET("/lookups/:id", s.handleGetLookup)
	api.GET("/stats", s.handleStats)

	return s
}

// Handler retorna el http.Handler del servidor
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start inicia el servidor en background
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Printf("Server listening on http://%s", listener.Addr())

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Serve error: %v", err)
		}
	}()

	return nil
}

// Addr retorna la dirección real en la que escucha el servidor
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop detiene el servidor esperando a los requests en curso
func (s *Server) Stop(ctx context.Context) error {
	log.Println("Server stopping...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// requestIDHeader identifica cada request en los logs y en la respuesta
const requestIDHeader = "X-Request-ID"

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		c.Next()
		log.Printf("[%s] %s %s %d %s", id[:min(8, len(id))], c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
