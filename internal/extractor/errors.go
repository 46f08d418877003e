package extractor

import (
	"errors"
	"strings"
)

// FailureKind clasifica la causa de un fallo de extracción
type FailureKind string

const (
	KindUnknown     FailureKind = "unknown"
	KindInvalidURL  FailureKind = "invalid_url"
	KindUnsupported FailureKind = "unsupported"
	KindUnavailable FailureKind = "unavailable"
	KindRateLimited FailureKind = "rate_limited"
	KindNetwork     FailureKind = "network"
	KindTimeout     FailureKind = "timeout"
)

// ExtractionFailure es el único error que retorna un Extractor.
// Error() retorna el mensaje tal cual para mostrarlo al usuario.
type ExtractionFailure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (e *ExtractionFailure) Error() string {
	return e.Message
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}

// AsFailure retorna el ExtractionFailure dentro de err, si existe
func AsFailure(err error) (*ExtractionFailure, bool) {
	var failure *ExtractionFailure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// newFailure construye el fallo a partir del mensaje de yt-dlp
func newFailure(message string, err error) *ExtractionFailure {
	return &ExtractionFailure{
		Kind:    classifyMessage(message),
		Message: message,
		Err:     err,
	}
}

// Patrones de mensajes de yt-dlp por categoría, en orden de prioridad
var failurePatterns = []struct {
	kind     FailureKind
	patterns []string
}{
	{KindInvalidURL, []string{"is not a valid url", "invalid url"}},
	{KindUnsupported, []string{"unsupported url", "no suitable extractor"}},
	{KindRateLimited, []string{"http error 429", "too many requests", "rate-limit", "rate limit"}},
	{KindUnavailable, []string{
		"video unavailable",
		"private video",
		"this video has been removed",
		"sign in to confirm your age",
		"not available in your country",
		"members-only",
		"http error 404",
		"http error 403",
	}},
	{KindNetwork, []string{
		"unable to download webpage",
		"connection refused",
		"connection reset",
		"name or service not known",
		"temporary failure in name resolution",
		"network is unreachable",
		"timed out",
	}},
}

func classifyMessage(message string) FailureKind {
	lower := strings.ToLower(message)

	for _, group := range failurePatterns {
		for _, p := range group.patterns {
			if strings.Contains(lower, p) {
				return group.kind
			}
		}
	}

	return KindUnknown
}
