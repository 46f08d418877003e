// Package links clasifica y ordena los formatos que devuelve el extractor.
package links

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/elsanchez/smart-links/internal/domain"
)

// MaxAudioLinks es el máximo de formatos solo audio que se muestran
const MaxAudioLinks = 5

const bytesPerMB = 1024 * 1024

// rankedAudio acompaña el link con su valor numérico para ordenar
type rankedAudio struct {
	link  domain.AudioLink
	value float64
}

// Classify separa los formatos en video+audio y solo audio.
// Los formatos de video sin audio o sin ningún codec se descartan.
// Los links de video conservan el orden del extractor; los de audio se
// ordenan por bitrate descendente y se recortan a MaxAudioLinks.
func Classify(formats []domain.FormatDescriptor, title *string) *domain.ExtractionResult {
	result := &domain.ExtractionResult{
		Title:      domain.UnknownTitle,
		VideoLinks: []domain.VideoLink{},
		AudioLinks: []domain.AudioLink{},
	}
	if title != nil {
		result.Title = *title
	}

	var audio []rankedAudio

	for i := range formats {
		f := &formats[i]
		size := FormatSize(f.FileSize)

		switch {
		case f.HasVideo() && f.HasAudio():
			resolution := domain.UnknownResolution
			if f.Resolution != nil {
				resolution = *f.Resolution
			}
			result.VideoLinks = append(result.VideoLinks, domain.VideoLink{
				Resolution: resolution,
				Size:       size,
				URL:        f.URL,
			})

		case !f.HasVideo() && f.HasAudio():
			label, value := FormatBitrate(f.AverageBitrate)
			audio = append(audio, rankedAudio{
				link:  domain.AudioLink{Bitrate: label, Size: size, URL: f.URL},
				value: value,
			})
		}
	}

	// Stable: a igual bitrate se respeta el orden original
	sort.SliceStable(audio, func(i, j int) bool {
		return audio[i].value > audio[j].value
	})

	if len(audio) > MaxAudioLinks {
		audio = audio[:MaxAudioLinks]
	}

	for _, a := range audio {
		result.AudioLinks = append(result.AudioLinks, a.link)
	}

	return result
}

// FormatSize convierte bytes a "X.XX MB", o "Unknown Size" si no hay tamaño
func FormatSize(bytes *int64) string {
	if bytes == nil || *bytes == 0 {
		return domain.UnknownSize
	}
	return fmt.Sprintf("%.2f MB", float64(*bytes)/bytesPerMB)
}

// FormatBitrate retorna la etiqueta del bitrate y el valor usado para ordenar.
// El valor es el mismo número redondeado que muestra la etiqueta; si el
// bitrate falta o no es numérico el valor es 0.
func FormatBitrate(abr *string) (string, float64) {
	if abr == nil {
		return domain.UnknownBitrate, 0
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(*abr), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return domain.UnknownBitrate, 0
	}

	rounded := strconv.FormatFloat(value, 'f', 0, 64)
	sortValue, _ := strconv.ParseFloat(rounded, 64)

	return rounded + " kbps", sortValue
}
