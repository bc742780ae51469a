package cdn

import (
	"context"
	"net/url"
	"os"
	"strings"

	"cineadmin/db"
	"cineadmin/structs"

	"go.mongodb.org/mongo-driver/bson"
)

// Environment fallbacks, read once at startup. The settings documents in
// Mongo override these when present.
var (
	envBucket       = os.Getenv("STORAGE_BUCKET")
	envCustomDomain = os.Getenv("STORAGE_CUSTOM_DOMAIN")
	envDirect       = os.Getenv("CDN_DIRECT") == "true"
)

func DefaultCDNSettings() structs.CDNSettings {
	return structs.CDNSettings{
		Enabled:      envDirect,
		Provider:     "storage",
		CustomDomain: envCustomDomain,
		PublicBucket: envBucket,
	}
}

func DefaultEncodingSettings() structs.EncodingSettings {
	return structs.EncodingSettings{
		AutoEncode:         true,
		Codec:              "h264",
		Container:          "mp4",
		Resolutions:        []string{"1080p", "720p", "480p", "360p"},
		MaxBitrateKbps:     8000,
		GenerateThumbnails: true,
		ThumbnailInterval:  10,
	}
}

// GetCDNSettings reads the singleton cdn settings document and merges the
// stored fields over the defaults. An absent document or a failed read is
// valid: the defaults are returned and the caller never sees an error.
func GetCDNSettings(ctx context.Context) structs.CDNSettings {
	s := DefaultCDNSettings()

	var raw bson.M
	err := db.SettingsCollection.FindOne(ctx, bson.M{"_id": "cdn"}).Decode(&raw)
	if err != nil {
		return s
	}
	mergeCDN(&s, raw)
	return s
}

func mergeCDN(s *structs.CDNSettings, raw bson.M) {
	if v, ok := raw["enabled"].(bool); ok {
		s.Enabled = v
	}
	if v, ok := raw["provider"].(string); ok && v != "" {
		s.Provider = v
	}
	if v, ok := raw["custom_domain"].(string); ok && v != "" {
		s.CustomDomain = v
	}
	if v, ok := raw["public_bucket"].(string); ok && v != "" {
		s.PublicBucket = v
	}
	if v, ok := raw["pull_zone"].(string); ok && v != "" {
		s.PullZone = v
	}
	if v, ok := raw["cdn_domain"].(string); ok && v != "" {
		s.CDNDomain = v
	}
}

// GetEncodingSettings has the same merge-over-defaults contract for the
// transcoding parameters.
func GetEncodingSettings(ctx context.Context) structs.EncodingSettings {
	s := DefaultEncodingSettings()

	var raw bson.M
	err := db.SettingsCollection.FindOne(ctx, bson.M{"_id": "encoding"}).Decode(&raw)
	if err != nil {
		return s
	}
	if v, ok := raw["auto_encode"].(bool); ok {
		s.AutoEncode = v
	}
	if v, ok := raw["codec"].(string); ok && v != "" {
		s.Codec = v
	}
	if v, ok := raw["container"].(string); ok && v != "" {
		s.Container = v
	}
	if v, ok := raw["resolutions"].(bson.A); ok && len(v) > 0 {
		var resolutions []string
		for _, r := range v {
			if rs, ok := r.(string); ok {
				resolutions = append(resolutions, rs)
			}
		}
		if len(resolutions) > 0 {
			s.Resolutions = resolutions
		}
	}
	if v, ok := raw["max_bitrate_kbps"].(int32); ok && v > 0 {
		s.MaxBitrateKbps = int(v)
	}
	if v, ok := raw["max_bitrate_kbps"].(int64); ok && v > 0 {
		s.MaxBitrateKbps = int(v)
	}
	if v, ok := raw["generate_thumbnails"].(bool); ok {
		s.GenerateThumbnails = v
	}
	if v, ok := raw["thumbnail_interval"].(int32); ok && v > 0 {
		s.ThumbnailInterval = int(v)
	}
	return s
}

// BuildCDNUrl rewrites a stored-object URL for delivery according to the
// configured provider. It never fails the caller: any malformed input is
// returned unchanged.
func BuildCDNUrl(originalURL string, s structs.CDNSettings) string {
	if !s.Enabled || originalURL == "" {
		return originalURL
	}

	u, err := url.Parse(originalURL)
	if err != nil || u.Host == "" {
		return originalURL
	}

	switch s.Provider {
	case "selfhosted":
		// Reverse-proxy CDN: swap the origin, keep path and query.
		if s.CDNDomain == "" {
			return originalURL
		}
		return replaceOrigin(u, s.CDNDomain)

	case "bunny":
		// Pull zone: discard the origin and rebuild from the object path.
		if s.PullZone == "" {
			return originalURL
		}
		path := objectPath(u)
		return "https://" + s.PullZone + ".b-cdn.net/" + path

	default: // managed storage
		if s.CustomDomain != "" {
			return replaceOrigin(u, s.CustomDomain)
		}
		if s.PublicBucket != "" {
			if p, ok := storageObjectPath(u); ok {
				return "https://storage.googleapis.com/" + s.PublicBucket + "/" + p
			}
		}
		// Already CDN-backed, pass through.
		return originalURL
	}
}

// replaceOrigin swaps scheme and host for the configured domain. The domain
// may be bare ("cdn.example.com") or a full URL.
func replaceOrigin(u *url.URL, domain string) string {
	scheme := "https"
	host := domain
	if strings.Contains(domain, "://") {
		d, err := url.Parse(domain)
		if err != nil || d.Host == "" {
			return u.String()
		}
		scheme = d.Scheme
		host = d.Host
	}
	rewritten := *u
	rewritten.Scheme = scheme
	rewritten.Host = host
	return rewritten.String()
}

// objectPath extracts the object path for pull-zone delivery: for managed
// storage URLs the encoded segment after /o/, otherwise the plain URL path.
func objectPath(u *url.URL) string {
	if p, ok := storageObjectPath(u); ok {
		return p
	}
	return strings.TrimPrefix(u.EscapedPath(), "/")
}

// storageObjectPath extracts the url-encoded object path from the managed
// storage URL pattern .../o/<path>?... .
func storageObjectPath(u *url.URL) (string, bool) {
	escaped := u.EscapedPath()
	idx := strings.Index(escaped, "/o/")
	if idx < 0 {
		return "", false
	}
	encoded := escaped[idx+len("/o/"):]
	if encoded == "" {
		return "", false
	}
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		return encoded, true
	}
	return decoded, true
}

// GetQualitySettings maps a named resolution to encode parameters with the
// bitrate clamped to the configured ceiling. Unknown names fall back to the
// 720p preset.
func GetQualitySettings(resolution string, enc structs.EncodingSettings) structs.QualityPreset {
	presets := map[string]structs.QualityPreset{
		"2160p": {Label: "2160p", Width: 3840, Height: 2160, BitrateKbps: 16000},
		"1440p": {Label: "1440p", Width: 2560, Height: 1440, BitrateKbps: 10000},
		"1080p": {Label: "1080p", Width: 1920, Height: 1080, BitrateKbps: 8000},
		"720p":  {Label: "720p", Width: 1280, Height: 720, BitrateKbps: 5000},
		"480p":  {Label: "480p", Width: 854, Height: 480, BitrateKbps: 2500},
		"360p":  {Label: "360p", Width: 640, Height: 360, BitrateKbps: 1000},
		"240p":  {Label: "240p", Width: 426, Height: 240, BitrateKbps: 700},
		"144p":  {Label: "144p", Width: 256, Height: 144, BitrateKbps: 400},
	}

	preset, ok := presets[strings.ToLower(resolution)]
	if !ok {
		preset = presets["720p"]
	}
	if enc.MaxBitrateKbps > 0 && preset.BitrateKbps > enc.MaxBitrateKbps {
		preset.BitrateKbps = enc.MaxBitrateKbps
	}
	return preset
}
