package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/flock"

	"github.com/elsanchez/smart-links/internal/config"
	"github.com/elsanchez/smart-links/internal/extractor"
	"github.com/elsanchez/smart-links/internal/links"
	"github.com/elsanchez/smart-links/internal/repository"
	"github.com/elsanchez/smart-links/internal/repository/sqlite"
	"github.com/elsanchez/smart-links/internal/web"
)

const (
	version = "0.1.0"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: $XDG_CONFIG_HOME/smart-links/config.toml)")
	addr := flag.String("addr", "", "Listen address, overrides listen_addr")
	debug := flag.Bool("debug", false, "Log yt-dlp invocations")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("smart-linksd v%s starting...", version)

	// Cargar configuración: defaults < archivo < flags
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Verificar dependencias
	ytdlpVersion, err := extractor.CheckYtDlpInstalled(cfg.YtDlpPath)
	if err != nil {
		log.Fatalf("Dependency check failed: %v", err)
	}
	log.Printf("✓ yt-dlp %s found", ytdlpVersion)

	// Obtener directorios
	dataDir, err := cfg.ExpandedDataDir()
	if err != nil {
		log.Fatalf("Failed to resolve data directory: %v", err)
	}
	cookiesDir, err := cfg.ExpandedCookiesDir()
	if err != nil {
		log.Fatalf("Failed to resolve cookies directory: %v", err)
	}

	for _, dir := range []string{dataDir, cookiesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	log.Printf("Data directory: %s", dataDir)
	log.Printf("Cookies directory: %s", cookiesDir)

	// Una sola instancia por data dir
	lock := flock.New(filepath.Join(dataDir, "smart-linksd.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("Failed to acquire lock: %v", err)
	}
	if !locked {
		log.Fatalf("Another smart-linksd is already running with data directory %s", dataDir)
	}
	defer lock.Unlock()

	// Inicializar base de datos
	db, err := sqlite.NewDatabase(dataDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	log.Println("✓ Database initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.History {
		retention, err := cfg.Retention()
		if err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
		deleted, err := pruneHistory(ctx, db.LookupRepo, retention)
		if err != nil {
			log.Printf("Failed to prune lookup history: %v", err)
		} else if deleted > 0 {
			log.Printf("✓ Pruned %d lookups older than %s", deleted, retention)
		}
	}

	// Crear extractor
	timeout, err := cfg.Timeout()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	ext := extractor.NewYtDlp(extractor.Options{
		Binary:        cfg.YtDlpPath,
		Format:        cfg.Format,
		MaxConcurrent: cfg.MaxConcurrent,
		Timeout:       timeout,
		Accounts:      db.AccountRepo,
		Debug:         cfg.Debug,
	})
	log.Printf("✓ Extractor initialized (%d concurrent, timeout %s)", cfg.MaxConcurrent, timeout)

	// El historial es opcional
	var service *links.Service
	if cfg.History {
		service = links.NewService(ext, db.LookupRepo)
		log.Println("✓ Lookup history enabled")
	} else {
		service = links.NewService(ext, nil)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	var server *web.Server
	if cfg.History {
		server = web.NewServer(cfg.ListenAddr, service, db.LookupRepo)
	} else {
		server = web.NewServer(cfg.ListenAddr, service, nil)
	}

	if err := server.Start(ctx); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("✓ Server started")
	log.Println("smart-linksd is ready")

	// Esperar señal de terminación
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Received signal: %v", sig)
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	cancel()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// pruneHistory borra las consultas más antiguas que retention.
// Con retention en cero no borra nada.
func pruneHistory(ctx context.Context, history repository.LookupRepository, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	return history.DeleteOlderThan(ctx, time.Now().Add(-retention))
}
