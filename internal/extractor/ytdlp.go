package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/elsanchez/smart-links/internal/domain"
)

// DefaultFormat pide a yt-dlp el mejor audio, o el mejor video si no hay audio
const DefaultFormat = "bestaudio/bestvideo"

// Options configura el extractor de yt-dlp
type Options struct {
	Binary        string
	Format        string
	MaxConcurrent int
	Timeout       time.Duration
	Accounts      AccountGetter
	Debug         bool
}

// YtDlp implementa Extractor ejecutando yt-dlp en modo solo metadata
type YtDlp struct {
	binary   string
	format   string
	timeout  time.Duration
	accounts AccountGetter
	debug    bool
	slots    chan struct{}
}

// Compiletime check: asegura que implementa la interfaz
var _ Extractor = (*YtDlp)(nil)

// NewYtDlp crea un nuevo extractor de yt-dlp
func NewYtDlp(opts Options) *YtDlp {
	if opts.Binary == "" {
		opts.Binary = "yt-dlp"
	}
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 3
	}

	return &YtDlp{
		binary:   opts.Binary,
		format:   opts.Format,
		timeout:  opts.Timeout,
		accounts: opts.Accounts,
		debug:    opts.Debug,
		slots:    make(chan struct{}, opts.MaxConcurrent),
	}
}

// Extract ejecuta yt-dlp sin descargar y retorna título y formatos
func (y *YtDlp) Extract(ctx context.Context, rawURL string) (*domain.RawInfo, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, &ExtractionFailure{Kind: KindInvalidURL, Message: "url is required"}
	}

	// Obtener slot; sin cola propia, espera mientras el request siga vivo
	select {
	case y.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, &ExtractionFailure{Kind: KindTimeout, Message: "extraction cancelled", Err: ctx.Err()}
	}
	defer func() { <-y.slots }()

	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	args := y.buildArgs(ctx, rawURL)
	if y.debug {
		log.Printf("Running %s %s", y.binary, strings.Join(args, " "))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, y.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Procesos hijos de yt-dlp pueden mantener abiertos los pipes
	cmd.WaitDelay = 5 * time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg := "extraction timed out"
			if y.timeout > 0 {
				msg = fmt.Sprintf("extraction timed out after %s", y.timeout)
			}
			return nil, &ExtractionFailure{Kind: KindTimeout, Message: msg, Err: err}
		}
		return nil, newFailure(errorMessage(stderr.String(), err), err)
	}

	info, err := parseInfo(stdout.Bytes())
	if errors.Is(err, errNoFormats) {
		return nil, &ExtractionFailure{Kind: KindUnsupported, Message: "no formats found for " + rawURL, Err: err}
	}
	if err != nil {
		return nil, &ExtractionFailure{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("parse yt-dlp output: %v", err),
			Err:     err,
		}
	}

	return info, nil
}

// buildArgs construye los argumentos de yt-dlp para la URL
func (y *YtDlp) buildArgs(ctx context.Context, rawURL string) []string {
	args := []string{
		"--dump-single-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		"--quiet",
		"-f", y.format,
	}

	// Cookies: usar la cuenta activa de la plataforma si existe
	if path := y.cookiePath(ctx, DetectPlatform(rawURL)); path != "" {
		args = append(args, "--cookies", path)
	}

	// "--" evita que una URL que empiece con "-" se lea como opción
	return append(args, "--", rawURL)
}

// cookiePath retorna el archivo de cookies de la cuenta activa
func (y *YtDlp) cookiePath(ctx context.Context, platform string) string {
	if y.accounts == nil {
		return ""
	}

	account, err := y.accounts.GetActive(ctx, platform)
	if err != nil {
		log.Printf("Failed to get active account for %s: %v", platform, err)
		return ""
	}
	if account == nil || account.CookiePath == "" {
		return ""
	}

	if err := y.accounts.UpdateLastUsed(ctx, account.ID); err != nil {
		log.Printf("Failed to update last used for account %d: %v", account.ID, err)
	}

	return account.CookiePath
}

// errorMessage extrae el mensaje legible del stderr de yt-dlp
func errorMessage(stderr string, err error) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if strings.HasPrefix(line, "ERROR:") {
			return line
		}
	}

	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		return last
	}

	return fmt.Sprintf("yt-dlp failed: %v", err)
}

// CheckYtDlpInstalled verifica si yt-dlp está instalado y retorna su versión
func CheckYtDlpInstalled(binary string) (string, error) {
	if binary == "" {
		binary = "yt-dlp"
	}

	output, err := exec.Command(binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("yt-dlp not found: %w (install: pip install yt-dlp)", err)
	}

	return strings.TrimSpace(string(output)), nil
}
