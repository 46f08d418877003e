package domain

import "time"

// Account representa una cuenta de plataforma con cookies
type Account struct {
	ID               int64
	Platform         string
	Name             string
	CookiePath       string
	IsActive         bool
	LastUsed         *time.Time
	CreatedAt        time.Time
	ValidationStatus string
	ValidationError  *string
}

// Platform constants para las plataformas soportadas
const (
	PlatformYouTube     = "youtube"
	PlatformVimeo       = "vimeo"
	PlatformTwitter     = "twitter"
	PlatformInstagram   = "instagram"
	PlatformTikTok      = "tiktok"
	PlatformDailymotion = "dailymotion"
	PlatformTwitch      = "twitch"
	PlatformReddit      = "reddit"
	PlatformSoundCloud  = "soundcloud"
	PlatformOther       = "other"
)

// Estados de validación de cookies
const (
	ValidationStatusUnknown = "unknown"
	ValidationStatusValid   = "valid"
	ValidationStatusExpired = "expired"
	ValidationStatusInvalid = "invalid"
)
