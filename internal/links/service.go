package links

import (
	"context"
	"log"
	"time"

	"github.com/elsanchez/smart-links/internal/domain"
	"github.com/elsanchez/smart-links/internal/extractor"
)

// HistoryRecorder guarda cada consulta en el historial
type HistoryRecorder interface {
	Create(ctx context.Context, l *domain.Lookup) (int64, error)
}

// Service combina el extractor con la clasificación de formatos
type Service struct {
	extractor extractor.Extractor
	history   HistoryRecorder
}

// NewService crea un nuevo servicio; history puede ser nil
func NewService(ext extractor.Extractor, history HistoryRecorder) *Service {
	return &Service{
		extractor: ext,
		history:   history,
	}
}

// Lookup obtiene los formatos de la URL y retorna los links para mostrar.
// El resultado se retorna directamente al caller, no se guarda.
func (s *Service) Lookup(ctx context.Context, url string) (*domain.ExtractionResult, error) {
	info, err := s.extractor.Extract(ctx, url)
	if err != nil {
		s.record(ctx, url, nil, err)
		return nil, err
	}

	result := Classify(info.Formats, info.Title)
	s.record(ctx, url, result, nil)

	return result, nil
}

// record agrega la consulta al historial; un fallo aquí solo se loguea
func (s *Service) record(ctx context.Context, url string, result *domain.ExtractionResult, lookupErr error) {
	if s.history == nil {
		return
	}

	entry := &domain.Lookup{
		URL:       url,
		Platform:  extractor.DetectPlatform(url),
		Status:    domain.LookupCompleted,
		CreatedAt: time.Now(),
	}

	if lookupErr != nil {
		entry.Status = domain.LookupFailed
		entry.ErrorMessage = lookupErr.Error()
		entry.ErrorKind = string(extractor.KindUnknown)
		if failure, ok := extractor.AsFailure(lookupErr); ok {
			entry.ErrorKind = string(failure.Kind)
		}
	} else {
		entry.Title = result.Title
		entry.VideoCount = len(result.VideoLinks)
		entry.AudioCount = len(result.AudioLinks)
	}

	// El request puede estar cancelado; el historial se escribe igual
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if _, err := s.history.Create(recordCtx, entry); err != nil {
		log.Printf("Failed to record lookup for %s: %v", url, err)
	}
}
