package useragent

import "testing"

func TestBuild_FallsBackToUnknownDevice(t *testing.T) {
	d := Build(Device{})
	if d.DeviceName != "Unknown Device" {
		t.Fatalf("DeviceName = %q, want %q", d.DeviceName, "Unknown Device")
	}
}

func TestParse_DefaultsTypeToDesktop(t *testing.T) {
	d := Parse("some nonsense user agent string")
	if d.Type != "desktop" {
		t.Fatalf("Type = %q, want %q", d.Type, "desktop")
	}
}

func TestParse_iPhone(t *testing.T) {
	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	d := Parse(ua)
	if d.Type != "mobile" {
		t.Fatalf("Type = %q, want mobile", d.Type)
	}
	if d.OSName != "iOS" {
		t.Fatalf("OSName = %q, want iOS", d.OSName)
	}
	desc := Build(d)
	if desc.DeviceName != "iOS iPhone" {
		t.Fatalf("DeviceName = %q, want %q", desc.DeviceName, "iOS iPhone")
	}
}

func TestDeviceName_MacOSFoldedToMac(t *testing.T) {
	desc := Build(Device{OSName: "Mac OS X", BrowserName: "Safari"})
	if desc.DeviceName != "Mac X Safari" {
		t.Fatalf("DeviceName = %q, want %q", desc.DeviceName, "Mac X Safari")
	}
}

func TestDeviceName_BrowserFallback(t *testing.T) {
	desc := Build(Device{OSName: "Windows", BrowserName: "Edge"})
	if desc.DeviceName != "Windows Edge" {
		t.Fatalf("DeviceName = %q, want %q", desc.DeviceName, "Windows Edge")
	}
}

func TestParse_Windows(t *testing.T) {
	ua := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	d := Parse(ua)
	if d.OSName != "Windows" || d.Type != "desktop" || d.BrowserName != "Chrome" {
		t.Fatalf("unexpected parse: %+v", d)
	}
}
