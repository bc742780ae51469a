package cdn

import (
	"testing"

	"cineadmin/structs"
)

func TestBuildCDNUrlDisabled(t *testing.T) {
	s := structs.CDNSettings{Enabled: false, Provider: "bunny", PullZone: "zone"}
	in := "https://storage.example.com/a/b/c.jpg"
	if got := BuildCDNUrl(in, s); got != in {
		t.Fatalf("disabled settings should pass through, got %q", got)
	}
	if got := BuildCDNUrl("", s); got != "" {
		t.Fatalf("empty input should stay empty, got %q", got)
	}
}

func TestBuildCDNUrlMalformedInput(t *testing.T) {
	s := structs.CDNSettings{Enabled: true, Provider: "bunny", PullZone: "zone"}
	for _, in := range []string{"://bad", "not-a-url", "/relative/path.jpg"} {
		if got := BuildCDNUrl(in, s); got != in {
			t.Fatalf("malformed %q should pass through, got %q", in, got)
		}
	}
}

func TestBuildCDNUrlBunny(t *testing.T) {
	s := structs.CDNSettings{Enabled: true, Provider: "bunny", PullZone: "nt-cinema"}
	got := BuildCDNUrl("https://storage.example.com/a/b/c.jpg", s)
	want := "https://nt-cinema.b-cdn.net/a/b/c.jpg"
	if got != want {
		t.Fatalf("bunny rewrite: got %q, want %q", got, want)
	}

	// Managed-storage URL keeps only the encoded object segment.
	got = BuildCDNUrl("https://firebasestorage.googleapis.com/v0/b/app/o/posters%2Fmovie.jpg?alt=media", s)
	want = "https://nt-cinema.b-cdn.net/posters/movie.jpg"
	if got != want {
		t.Fatalf("bunny object path: got %q, want %q", got, want)
	}

	// No pull zone configured means no rewrite.
	s.PullZone = ""
	in := "https://storage.example.com/a/b/c.jpg"
	if got := BuildCDNUrl(in, s); got != in {
		t.Fatalf("missing pull zone should pass through, got %q", got)
	}
}

func TestBuildCDNUrlSelfhosted(t *testing.T) {
	s := structs.CDNSettings{Enabled: true, Provider: "selfhosted", CDNDomain: "cdn.example.org"}
	got := BuildCDNUrl("https://origin.example.com/media/x.mp4?v=2", s)
	want := "https://cdn.example.org/media/x.mp4?v=2"
	if got != want {
		t.Fatalf("selfhosted rewrite: got %q, want %q", got, want)
	}

	s.CDNDomain = "http://cdn.example.org:8080"
	got = BuildCDNUrl("https://origin.example.com/media/x.mp4", s)
	want = "http://cdn.example.org:8080/media/x.mp4"
	if got != want {
		t.Fatalf("selfhosted full-url domain: got %q, want %q", got, want)
	}
}

func TestBuildCDNUrlStorage(t *testing.T) {
	s := structs.CDNSettings{Enabled: true, Provider: "storage", CustomDomain: "media.example.com"}
	got := BuildCDNUrl("https://storage.example.com/a/b.jpg", s)
	want := "https://media.example.com/a/b.jpg"
	if got != want {
		t.Fatalf("custom domain rewrite: got %q, want %q", got, want)
	}

	s = structs.CDNSettings{Enabled: true, Provider: "storage", PublicBucket: "cine-public"}
	got = BuildCDNUrl("https://firebasestorage.googleapis.com/v0/b/app/o/trailers%2Fteaser.mp4?alt=media", s)
	want = "https://storage.googleapis.com/cine-public/trailers/teaser.mp4"
	if got != want {
		t.Fatalf("public bucket rewrite: got %q, want %q", got, want)
	}

	// Neither custom domain nor a recognizable object path: pass through.
	s = structs.CDNSettings{Enabled: true, Provider: "storage", PublicBucket: "cine-public"}
	in := "https://cdn.already.com/a/b.jpg"
	if got := BuildCDNUrl(in, s); got != in {
		t.Fatalf("non-storage url should pass through, got %q", got)
	}
}

func TestGetQualitySettings(t *testing.T) {
	enc := DefaultEncodingSettings()

	preset := GetQualitySettings("1080p", enc)
	if preset.Width != 1920 || preset.Height != 1080 || preset.BitrateKbps != 8000 {
		t.Fatalf("unexpected 1080p preset: %+v", preset)
	}

	// Ceiling clamps the preset bitrate.
	enc.MaxBitrateKbps = 3000
	preset = GetQualitySettings("2160p", enc)
	if preset.BitrateKbps != 3000 {
		t.Fatalf("bitrate not clamped: got %d", preset.BitrateKbps)
	}
	if preset.Width != 3840 {
		t.Fatalf("clamp should not change dimensions: %+v", preset)
	}

	// Unknown names fall back to 720p.
	preset = GetQualitySettings("999p", DefaultEncodingSettings())
	if preset.Label != "720p" {
		t.Fatalf("unknown resolution should fall back to 720p, got %q", preset.Label)
	}

	// Lookup is case-insensitive.
	preset = GetQualitySettings("480P", DefaultEncodingSettings())
	if preset.Label != "480p" {
		t.Fatalf("case-insensitive lookup failed, got %q", preset.Label)
	}
}
