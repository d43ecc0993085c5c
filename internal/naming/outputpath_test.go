package naming

import "testing"

const suffix = "_mask.png"

func TestMaskPath(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"jpeg keeps its extension", "data/cat.jpg", "data/cat.jpg_mask.png"},
		{"png", "/srv/in/a.png", "/srv/in/a.png_mask.png"},
		{"uppercase ext", "IMG_0001.JPG", "IMG_0001.JPG_mask.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskPath(tt.src, suffix); got != tt.want {
				t.Errorf("MaskPath(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestIsMaskArtifact(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"data/cat.jpg_mask.png", true},
		{"data/cat_mask.png", true},
		{"data/cat_mask.png.bak.png", true},
		{"data/cat.png", false},
		{"data_mask.png/cat.png", false},
		{"data/cat_MASK.png", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsMaskArtifact(tt.path, suffix); got != tt.want {
				t.Errorf("IsMaskArtifact(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
	if IsMaskArtifact("x_mask.png", "") {
		t.Error("empty suffix must never match")
	}
}

func TestSourceOf(t *testing.T) {
	src, ok := SourceOf(MaskPath("d/a.bmp", suffix), suffix)
	if !ok || src != "d/a.bmp" {
		t.Errorf("SourceOf round trip = %q, %v", src, ok)
	}
	if _, ok := SourceOf("d/a.bmp", suffix); ok {
		t.Error("SourceOf should reject a non-mask path")
	}
}
