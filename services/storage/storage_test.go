package storage

import (
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	key := GenerateKey(PrefixMedicalReports, "Blood Report (June).pdf")

	if !strings.HasPrefix(key, PrefixMedicalReports+"/") {
		t.Errorf("key %q missing prefix %q", key, PrefixMedicalReports)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key %q should keep the .pdf extension", key)
	}
	if strings.Contains(key, " ") || strings.Contains(key, "(") {
		t.Errorf("key %q should not contain unsanitized characters", key)
	}
}

func TestGenerateKeyUnique(t *testing.T) {
	a := GenerateKey(PrefixDetections, "scan.png")
	b := GenerateKey(PrefixDetections, "scan.png")
	if a == b {
		t.Errorf("expected distinct keys for identical filenames, got %q twice", a)
	}
}

func TestDetectionKey(t *testing.T) {
	key := DetectionKey("kidney", "scan.jpg")
	if !strings.HasPrefix(key, PrefixDetections+"/kidney/") {
		t.Errorf("key %q missing detection type segment", key)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report", "report"},
		{"my report", "my-report"},
		{"a/b\\c", "a-b-c"},
		{"", "file"},
		{strings.Repeat("x", 80), strings.Repeat("x", 60)},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"scan.jpg", "image/jpeg"},
		{"scan.JPEG", "image/jpeg"},
		{"scan.png", "image/png"},
		{"photo.webp", "image/webp"},
		{"anim.gif", "image/gif"},
		{"report.pdf", "application/pdf"},
		{"data.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := GetContentType(tt.filename); got != tt.want {
			t.Errorf("GetContentType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsImage(t *testing.T) {
	if !IsImage("scan.PNG") {
		t.Error("expected .PNG to be an image")
	}
	if IsImage("report.pdf") {
		t.Error("expected .pdf not to be an image")
	}
	if IsImage("noext") {
		t.Error("expected extensionless file not to be an image")
	}
}
