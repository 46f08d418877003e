package cookies

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/chrome"
	_ "github.com/browserutils/kooky/browser/chromium"
	_ "github.com/browserutils/kooky/browser/edge"
	_ "github.com/browserutils/kooky/browser/firefox"
	_ "github.com/browserutils/kooky/browser/opera"
)

// SupportedBrowsers lists the browsers kooky is built with here
var SupportedBrowsers = []string{"chrome", "chromium", "firefox", "edge", "opera"}

// ExtractOptions contains options for browser cookie extraction
type ExtractOptions struct {
	Browser    string // Browser name (chrome, firefox, etc.); empty = any
	Domain     string // Domain to filter cookies (e.g., "youtube.com")
	OutputPath string // Path to save cookies in Netscape format
}

// BrowserExtractor reads cookies from installed web browsers
type BrowserExtractor struct{}

// NewBrowserExtractor creates a new browser cookie extractor
func NewBrowserExtractor() *BrowserExtractor {
	return &BrowserExtractor{}
}

// Extract reads the browser cookies for a domain and optionally saves them
func (e *BrowserExtractor) Extract(ctx context.Context, opts ExtractOptions) ([]NetscapeCookie, error) {
	browser := strings.ToLower(opts.Browser)

	var filters []kooky.Filter
	if opts.Domain != "" {
		filters = append(filters, kooky.DomainHasSuffix(opts.Domain))
	}

	cookies, err := kooky.ReadCookies(ctx, filters...)
	if err != nil && len(cookies) == 0 {
		return nil, fmt.Errorf("read cookies from browser: %w", err)
	}

	var result []NetscapeCookie
	for _, cookie := range cookies {
		if browser != "" && cookie.Browser != nil &&
			!strings.Contains(strings.ToLower(cookie.Browser.Browser()), browser) {
			continue
		}

		cookieDomain := cookie.Domain
		if cookieDomain != "" && !strings.HasPrefix(cookieDomain, ".") {
			cookieDomain = "." + cookieDomain
		}

		expiration := cookie.Expires.Unix()
		if cookie.Expires.IsZero() || expiration < 0 {
			expiration = 0
		}

		result = append(result, NetscapeCookie{
			Domain:     cookieDomain,
			Flag:       "TRUE",
			Path:       cookie.Path,
			Secure:     cookie.Secure,
			Expiration: expiration,
			Name:       cookie.Name,
			Value:      cookie.Value,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no cookies found for browser %q and domain %q", opts.Browser, opts.Domain)
	}

	if opts.OutputPath != "" {
		if err := WriteNetscape(opts.OutputPath, result); err != nil {
			return nil, fmt.Errorf("save cookies: %w", err)
		}
	}

	return result, nil
}

// WriteNetscape writes cookies to path in the format yt-dlp reads with --cookies
func WriteNetscape(path string, cookies []NetscapeCookie) error {
	var b strings.Builder
	b.WriteString("# Netscape HTTP Cookie File\n")

	for _, cookie := range cookies {
		secure := "FALSE"
		if cookie.Secure {
			secure = "TRUE"
		}

		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			cookie.Domain,
			cookie.Flag,
			cookie.Path,
			secure,
			cookie.Expiration,
			cookie.Name,
			cookie.Value,
		)
	}

	return os.WriteFile(path, []byte(b.String()), 0600)
}
