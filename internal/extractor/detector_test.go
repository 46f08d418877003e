package extractor

import "testing"

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "youtube"},
		{"https://youtu.be/dQw4w9WgXcQ", "youtube"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "youtube"},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "youtube"},
		{"https://twitter.com/user/status/123", "twitter"},
		{"https://x.com/user/status/123", "twitter"},
		{"https://www.instagram.com/p/ABC123/", "instagram"},
		{"https://www.tiktok.com/@user/video/123", "tiktok"},
		{"https://vimeo.com/123456789", "vimeo"},
		{"https://www.reddit.com/r/videos/comments/abc/", "reddit"},
		{"https://soundcloud.com/artist/track", "soundcloud"},
		{"https://box.com/video", "other"},
		{"https://unknown-site.com/video", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			if result != tt.expected {
				t.Errorf("DetectPlatform(%q) = %q, want %q", tt.url, result, tt.expected)
			}
		})
	}
}
