package cookies

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/elsanchez/smart-links/internal/domain"
)

// NetscapeCookie represents a single cookie from Netscape format
type NetscapeCookie struct {
	Domain     string
	Flag       string
	Path       string
	Secure     bool
	Expiration int64 // Unix timestamp, 0 = session cookie
	Name       string
	Value      string
}

// cookieDomains maps cookie domains to the platform whose extractor uses them
var cookieDomains = map[string]string{
	"youtube.com":     domain.PlatformYouTube,
	"google.com":      domain.PlatformYouTube,
	"vimeo.com":       domain.PlatformVimeo,
	"twitter.com":     domain.PlatformTwitter,
	"x.com":           domain.PlatformTwitter,
	"instagram.com":   domain.PlatformInstagram,
	"tiktok.com":      domain.PlatformTikTok,
	"dailymotion.com": domain.PlatformDailymotion,
	"twitch.tv":       domain.PlatformTwitch,
	"reddit.com":      domain.PlatformReddit,
	"soundcloud.com":  domain.PlatformSoundCloud,
}

// CookieParser handles parsing of Netscape cookie format files
type CookieParser struct{}

// NewCookieParser creates a new cookie parser
func NewCookieParser() *CookieParser {
	return &CookieParser{}
}

// ParseFile parses a Netscape format cookie file
func (p *CookieParser) ParseFile(path string) ([]NetscapeCookie, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cookie file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads cookies in Netscape format:
// domain	flag	path	secure	expiration	name	value
func (p *CookieParser) Parse(r io.Reader) ([]NetscapeCookie, error) {
	var cookies []NetscapeCookie
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")

		// curl/yt-dlp prefix HttpOnly cookies with "#HttpOnly_"
		if strings.HasPrefix(line, "#HttpOnly_") {
			line = strings.TrimPrefix(line, "#HttpOnly_")
		} else if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			// Try space-separated as fallback
			fields = strings.Fields(line)
			if len(fields) < 7 {
				return nil, fmt.Errorf("line %d: invalid format (expected 7 fields, got %d)", lineNum, len(fields))
			}
		}

		expiration, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid expiration timestamp: %w", lineNum, err)
		}

		cookies = append(cookies, NetscapeCookie{
			Domain:     fields[0],
			Flag:       fields[1],
			Path:       fields[2],
			Secure:     strings.EqualFold(fields[3], "TRUE"),
			Expiration: expiration,
			Name:       fields[5],
			Value:      strings.Trim(fields[6], "\""),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	if len(cookies) == 0 {
		return nil, fmt.Errorf("no valid cookies found in file")
	}

	return cookies, nil
}

// FindEarliestExpiration returns the earliest expiration among persistent cookies
func (p *CookieParser) FindEarliestExpiration(cookies []NetscapeCookie) time.Time {
	var earliest int64
	for _, cookie := range cookies {
		if cookie.Expiration == 0 {
			continue
		}
		if earliest == 0 || cookie.Expiration < earliest {
			earliest = cookie.Expiration
		}
	}

	if earliest == 0 {
		return time.Time{}
	}
	return time.Unix(earliest, 0)
}

// DetectPlatform returns the platform with the most cookies in the file
func (p *CookieParser) DetectPlatform(cookies []NetscapeCookie) string {
	counts := make(map[string]int)
	for _, cookie := range cookies {
		if platform, ok := platformForDomain(cookie.Domain); ok {
			counts[platform]++
		}
	}

	detected := ""
	maxCount := 0
	for platform, count := range counts {
		// Desempate por nombre para que el resultado sea estable
		if count > maxCount || (count == maxCount && platform < detected) {
			maxCount = count
			detected = platform
		}
	}

	return detected
}

// GetDomains returns the sorted list of unique domains in the cookies
func (p *CookieParser) GetDomains(cookies []NetscapeCookie) []string {
	set := make(map[string]bool)
	for _, cookie := range cookies {
		set[strings.TrimPrefix(cookie.Domain, ".")] = true
	}

	domains := make([]string, 0, len(set))
	for d := range set {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	return domains
}

// platformForDomain matches a cookie domain and its parent domains
func platformForDomain(cookieDomain string) (string, bool) {
	d := strings.ToLower(strings.TrimPrefix(cookieDomain, "."))

	for d != "" {
		if platform, ok := cookieDomains[d]; ok {
			return platform, true
		}
		i := strings.Index(d, ".")
		if i < 0 {
			break
		}
		d = d[i+1:]
	}

	return "", false
}
