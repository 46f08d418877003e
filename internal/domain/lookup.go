package domain

import "time"

// LookupStatus representa el resultado de una consulta
type LookupStatus string

const (
	LookupCompleted LookupStatus = "completed"
	LookupFailed    LookupStatus = "failed"
)

// Lookup es una entrada del historial de consultas
type Lookup struct {
	ID           int64        `json:"id"`
	URL          string       `json:"url"`
	Platform     string       `json:"platform"`
	Title        string       `json:"title,omitempty"`
	VideoCount   int          `json:"video_count"`
	AudioCount   int          `json:"audio_count"`
	Status       LookupStatus `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	ErrorKind    string       `json:"error_kind,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// IsFailed retorna true si la consulta falló
func (l *Lookup) IsFailed() bool {
	return l.Status == LookupFailed
}
