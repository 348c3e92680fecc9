// Package useragent derives the advisory device descriptor from a client's
// User-Agent header. No user-agent-parsing library appears anywhere in the
// retrieval pack, so this is a small hand-rolled heuristic parser rather
// than an adapted third-party one.
package useragent

import "strings"

// Device is the advisory, best-effort parse of a User-Agent string.
type Device struct {
	OSName      string
	Model       string
	BrowserName string
	Type        string // "mobile" | "tablet" | "laptop" | "desktop" | other
}

// Parse never fails: an unrecognized or empty input yields a Device whose
// only set field is Type "desktop", which Build below turns into the
// deviceName "Unknown Device".
func Parse(ua string) Device {
	var d Device
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "iphone"):
		d.OSName, d.Model, d.Type = "iOS", "iPhone", "mobile"
	case strings.Contains(lower, "ipad"):
		d.OSName, d.Model, d.Type = "iOS", "iPad", "tablet"
	case strings.Contains(lower, "android"):
		d.OSName, d.Type = "Android", "mobile"
		if strings.Contains(lower, "tablet") || strings.Contains(lower, "sm-t") {
			d.Type = "tablet"
		}
		d.Model = androidModel(ua)
	case strings.Contains(lower, "mac os x") || strings.Contains(lower, "macintosh"):
		d.OSName, d.Type = "Mac OS X", "desktop"
	case strings.Contains(lower, "windows"):
		d.OSName, d.Type = "Windows", "desktop"
	case strings.Contains(lower, "cros"):
		d.OSName, d.Type = "Chrome OS", "laptop"
	case strings.Contains(lower, "linux"):
		d.OSName, d.Type = "Linux", "desktop"
	}

	switch {
	case strings.Contains(lower, "edg/"):
		d.BrowserName = "Edge"
	case strings.Contains(lower, "opr/") || strings.Contains(lower, "opera"):
		d.BrowserName = "Opera"
	case strings.Contains(lower, "chrome/"):
		d.BrowserName = "Chrome"
	case strings.Contains(lower, "crios/"):
		d.BrowserName = "Chrome"
	case strings.Contains(lower, "fxios/") || strings.Contains(lower, "firefox/"):
		d.BrowserName = "Firefox"
	case strings.Contains(lower, "safari/") && strings.Contains(lower, "version/"):
		d.BrowserName = "Safari"
	}

	if d.Type == "" {
		d.Type = "desktop"
	}
	return d
}

// androidModel pulls the token between "; " and " Build" or the next ")"
// out of an Android UA's platform section, e.g. "SM-G960U" out of
// "...; SM-G960U Build/...". Best effort: returns "" if the shape doesn't
// match.
func androidModel(ua string) string {
	idx := strings.Index(ua, "Android")
	if idx < 0 {
		return ""
	}
	rest := ua[idx:]
	semi := strings.Index(rest, ";")
	if semi < 0 {
		return ""
	}
	rest = rest[semi+1:]
	end := strings.IndexAny(rest, ")")
	if end < 0 {
		return ""
	}
	rest = rest[:end]
	if b := strings.Index(rest, "Build"); b >= 0 {
		rest = rest[:b]
	}
	return strings.TrimSpace(rest)
}

// Descriptor is the on-the-wire device record: {model, os, browser, type,
// deviceName, displayName}. displayName is filled in by the caller (it
// depends on the peer identifier, not the user agent).
type Descriptor struct {
	Model       string `json:"model"`
	OS          string `json:"os"`
	Browser     string `json:"browser"`
	Type        string `json:"type"`
	DeviceName  string `json:"deviceName"`
	DisplayName string `json:"displayName"`
}

// Build assembles a Descriptor from a parsed Device, applying the
// deviceName construction rule: OS name (with "Mac OS" folded to "Mac")
// followed by model, falling back to browser, falling back to
// "Unknown Device".
func Build(d Device) Descriptor {
	desc := Descriptor{
		Model:   d.Model,
		OS:      d.OSName,
		Browser: d.BrowserName,
		Type:    d.Type,
	}
	desc.DeviceName = deviceName(d)
	return desc
}

func deviceName(d Device) string {
	var b strings.Builder
	if d.OSName != "" {
		b.WriteString(strings.ReplaceAll(d.OSName, "Mac OS", "Mac"))
		b.WriteString(" ")
	}
	switch {
	case d.Model != "":
		b.WriteString(d.Model)
	case d.BrowserName != "":
		b.WriteString(d.BrowserName)
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		return "Unknown Device"
	}
	return name
}
