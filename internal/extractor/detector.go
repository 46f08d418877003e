package extractor

import (
	"net/url"
	"strings"

	"github.com/elsanchez/smart-links/internal/domain"
)

// Hosts conocidos por plataforma
var platformHosts = []struct {
	platform string
	hosts    []string
}{
	{domain.PlatformYouTube, []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}},
	{domain.PlatformTwitter, []string{"twitter.com", "x.com"}},
	{domain.PlatformInstagram, []string{"instagram.com"}},
	{domain.PlatformTikTok, []string{"tiktok.com"}},
	{domain.PlatformVimeo, []string{"vimeo.com"}},
	{domain.PlatformDailymotion, []string{"dailymotion.com", "dai.ly"}},
	{domain.PlatformTwitch, []string{"twitch.tv"}},
	{domain.PlatformReddit, []string{"reddit.com", "redd.it"}},
	{domain.PlatformSoundCloud, []string{"soundcloud.com"}},
}

// DetectPlatform detecta la plataforma desde la URL
func DetectPlatform(urlStr string) string {
	host := hostOf(urlStr)
	if host == "" {
		return domain.PlatformOther
	}

	for _, p := range platformHosts {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p.platform
			}
		}
	}

	return domain.PlatformOther
}

// hostOf extrae el host en minúsculas; acepta URLs sin esquema
func hostOf(urlStr string) string {
	urlStr = strings.TrimSpace(strings.ToLower(urlStr))
	if urlStr == "" {
		return ""
	}

	if !strings.Contains(urlStr, "://") {
		urlStr = "https://" + urlStr
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
