package cookies

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleCookies = `# Netscape HTTP Cookie File
# This is a generated file! Do not edit.

.youtube.com	TRUE	/	TRUE	1893456000	PREF	"f6=40000000"
.youtube.com	TRUE	/	TRUE	1861920000	SID	abc123
#HttpOnly_.youtube.com	TRUE	/	TRUE	1861920000	HSID	def456
.google.com	TRUE	/	FALSE	0	NID	session
.vimeo.com	TRUE	/	FALSE	1861920000	vuid	xyz
`

func writeCookieFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write cookie file: %v", err)
	}
	return path
}

func TestCookieParser_ParseFile(t *testing.T) {
	p := NewCookieParser()

	cookies, err := p.ParseFile(writeCookieFile(t, sampleCookies))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if len(cookies) != 5 {
		t.Fatalf("expected 5 cookies, got %d", len(cookies))
	}

	if cookies[0].Value != "f6=40000000" {
		t.Errorf("expected quotes to be stripped, got %q", cookies[0].Value)
	}

	if !cookies[0].Secure || cookies[3].Secure {
		t.Error("unexpected secure flags")
	}

	if cookies[2].Name != "HSID" || cookies[2].Domain != ".youtube.com" {
		t.Errorf("HttpOnly cookie not parsed: %+v", cookies[2])
	}
}

func TestCookieParser_ParseErrors(t *testing.T) {
	p := NewCookieParser()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty", "# only comments\n\n", "no valid cookies"},
		{"short line", ".youtube.com\tTRUE\t/\n", "expected 7 fields"},
		{"bad expiration", ".youtube.com\tTRUE\t/\tTRUE\tsoon\tSID\tx\n", "invalid expiration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(strings.NewReader(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}

	if _, err := p.ParseFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCookieParser_DetectPlatform(t *testing.T) {
	p := NewCookieParser()

	tests := []struct {
		name     string
		domains  []string
		expected string
	}{
		{"youtube majority", []string{".youtube.com", ".youtube.com", ".vimeo.com"}, "youtube"},
		{"subdomain", []string{"player.vimeo.com"}, "vimeo"},
		{"google counts as youtube", []string{".google.com", ".accounts.google.com"}, "youtube"},
		{"x.com", []string{".x.com"}, "twitter"},
		{"unknown", []string{".example.com"}, ""},
		{"tie is stable", []string{".vimeo.com", ".youtube.com"}, "vimeo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cookies []NetscapeCookie
			for _, d := range tt.domains {
				cookies = append(cookies, NetscapeCookie{Domain: d})
			}
			if got := p.DetectPlatform(cookies); got != tt.expected {
				t.Errorf("DetectPlatform() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCookieParser_EarliestAndDomains(t *testing.T) {
	p := NewCookieParser()

	cookies, err := p.Parse(strings.NewReader(sampleCookies))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	earliest := p.FindEarliestExpiration(cookies)
	if !earliest.Equal(time.Unix(1861920000, 0)) {
		t.Errorf("unexpected earliest expiration: %v", earliest)
	}

	domains := p.GetDomains(cookies)
	want := []string{"google.com", "vimeo.com", "youtube.com"}
	if strings.Join(domains, ",") != strings.Join(want, ",") {
		t.Errorf("GetDomains() = %v, want %v", domains, want)
	}

	if !p.FindEarliestExpiration([]NetscapeCookie{{Expiration: 0}}).IsZero() {
		t.Error("session cookies only should have no expiration")
	}
}
