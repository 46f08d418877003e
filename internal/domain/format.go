package domain

// NoCodec es el valor que yt-dlp usa cuando un stream no tiene video o audio
const NoCodec = "none"

// Etiquetas por defecto cuando el extractor no entrega el dato
const (
	UnknownTitle      = "Unknown Title"
	UnknownResolution = "Unknown"
	UnknownSize       = "Unknown Size"
	UnknownBitrate    = "Unknown Bitrate"
)

// FormatDescriptor describe un formato tal como lo reporta el extractor.
// Los punteros nil representan campos ausentes.
type FormatDescriptor struct {
	VideoCodec *string
	AudioCodec *string
	FileSize   *int64
	Resolution *string
	// AverageBitrate guarda el valor textual de "abr" (número o string)
	AverageBitrate *string
	URL            string
}

// HasVideo retorna true si el formato trae un codec de video
func (f *FormatDescriptor) HasVideo() bool {
	return f.VideoCodec != nil && *f.VideoCodec != NoCodec
}

// HasAudio retorna true si el formato trae un codec de audio
func (f *FormatDescriptor) HasAudio() bool {
	return f.AudioCodec != nil && *f.AudioCodec != NoCodec
}

// RawInfo es la salida del extractor antes de clasificar
type RawInfo struct {
	Title   *string
	Formats []FormatDescriptor
}

// VideoLink es un formato con video y audio listo para mostrar
type VideoLink struct {
	Resolution string `json:"resolution"`
	Size       string `json:"size"`
	URL        string `json:"url"`
}

// AudioLink es un formato solo audio listo para mostrar
type AudioLink struct {
	Bitrate string `json:"abr"`
	Size    string `json:"size"`
	URL     string `json:"url"`
}

// ExtractionResult es lo que se renderiza para una URL
type ExtractionResult struct {
	Title      string      `json:"video_title"`
	VideoLinks []VideoLink `json:"video_links"`
	AudioLinks []AudioLink `json:"audio_links"`
}
