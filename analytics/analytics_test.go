package analytics

import "testing"

func TestDeviceFromUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", "desktop"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", "mobile"},
		{"Mozilla/5.0 (Linux; Android 14; Pixel 8) Mobile", "mobile"},
		{"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", "tablet"},
		{"something with Tablet in it", "tablet"},
		{"", "desktop"},
	}
	for _, tt := range tests {
		if got := DeviceFromUserAgent(tt.ua); got != tt.want {
			t.Errorf("DeviceFromUserAgent(%q) = %q, want %q", tt.ua, got, tt.want)
		}
	}
}

func TestIsBot(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", true},
		{"Mozilla/5.0 (compatible; bingbot/2.0)", true},
		{"curl/8.0 spider", true},
		{"HeadlessChrome/120.0", true},
		{"", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/120.0", false},
	}
	for _, tt := range tests {
		if got := IsBot(tt.ua); got != tt.want {
			t.Errorf("IsBot(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}

func TestHashIPStableAndShort(t *testing.T) {
	a := HashIP("203.0.113.7")
	b := HashIP("203.0.113.7")
	c := HashIP("203.0.113.8")
	if a != b {
		t.Error("same IP should hash identically")
	}
	if a == c {
		t.Error("different IPs should hash differently")
	}
	if len(a) != 16 {
		t.Errorf("hash length = %d, want 16", len(a))
	}
}

func TestGenerateVisitorIDVariesByUserAgent(t *testing.T) {
	a := GenerateVisitorID("203.0.113.7", "Firefox")
	b := GenerateVisitorID("203.0.113.7", "Chrome")
	if a == b {
		t.Error("visitor ID should depend on the User-Agent")
	}
}
