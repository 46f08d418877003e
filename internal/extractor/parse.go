package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/elsanchez/smart-links/internal/domain"
)

// errNoFormats indica una respuesta sin lista de formatos (p. ej. una playlist)
var errNoFormats = errors.New("no formats found")

// ytdlpFormat mapea una entrada de "formats" del JSON de yt-dlp.
// Todos los campos se leen crudos: un campo con tipo inesperado se
// considera ausente en lugar de invalidar la respuesta completa.
type ytdlpFormat struct {
	VCodec     json.RawMessage `json:"vcodec"`
	ACodec     json.RawMessage `json:"acodec"`
	FileSize   json.RawMessage `json:"filesize"`
	Resolution json.RawMessage `json:"resolution"`
	ABR        json.RawMessage `json:"abr"`
	URL        json.RawMessage `json:"url"`
}

// ytdlpInfo mapea la salida de --dump-single-json.
// Los extractores de un solo formato dejan los campos en la raíz.
type ytdlpInfo struct {
	ytdlpFormat
	Title   json.RawMessage `json:"title"`
	Formats []ytdlpFormat   `json:"formats"`
}

// parseInfo convierte la salida de yt-dlp en RawInfo
func parseInfo(data []byte) (*domain.RawInfo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty output")
	}

	var info ytdlpInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	formats := info.Formats
	if formats == nil {
		if rawString(info.URL) == nil {
			return nil, errNoFormats
		}
		formats = []ytdlpFormat{info.ytdlpFormat}
	}

	raw := &domain.RawInfo{
		Title:   rawString(info.Title),
		Formats: make([]domain.FormatDescriptor, 0, len(formats)),
	}

	for _, f := range formats {
		raw.Formats = append(raw.Formats, f.toDescriptor())
	}

	return raw, nil
}

func (f *ytdlpFormat) toDescriptor() domain.FormatDescriptor {
	d := domain.FormatDescriptor{
		VideoCodec:     rawString(f.VCodec),
		AudioCodec:     rawString(f.ACodec),
		FileSize:       rawInt(f.FileSize),
		Resolution:     rawString(f.Resolution),
		AverageBitrate: rawText(f.ABR),
	}

	if u := rawString(f.URL); u != nil {
		d.URL = *u
	}

	return d
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// rawString retorna el string JSON, o nil si falta o no es string
func rawString(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}

	return &s
}

// rawText retorna un string JSON como texto, o el literal si es otro tipo
func rawText(raw json.RawMessage) *string {
	if isNull(raw) {
		return nil
	}

	if s := rawString(raw); s != nil {
		return s
	}

	text := string(raw)
	return &text
}

// rawInt acepta enteros, flotantes y strings numéricos
func rawInt(raw json.RawMessage) *int64 {
	text := rawText(raw)
	if text == nil {
		return nil
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(*text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil
	}
	// float64(MaxInt64) redondea a 2^63, que ya no cabe en int64
	if value >= math.MaxInt64 {
		return nil
	}

	n := int64(value)
	return &n
}
