package textfx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		css  string
		want Font
	}{
		{"16px Go", Font{Family: "Go", Size: 16, Weight: 400}},
		{"bold 48px Go", Font{Family: "Go", Size: 48, Weight: 700}},
		{"italic 700 64px/1.2 \"Go Mono\", monospace", Font{Family: "\"Go Mono\", monospace", Size: 64, Weight: 700, Italic: true}},
		{"normal small-caps 300 12pt serif", Font{Family: "serif", Size: 16, Weight: 300}},
		{"2rem system-ui", Font{Family: "system-ui", Size: 32, Weight: 400}},
		{"oblique lighter 1.5em sans-serif", Font{Family: "sans-serif", Size: 24, Weight: 300, Italic: true}},
	}
	for _, tt := range tests {
		t.Run(tt.css, func(t *testing.T) {
			got, err := ParseFont(tt.css)
			if err != nil {
				t.Fatalf("ParseFont(%q) = %v", tt.css, err)
			}
			if got.Family != tt.want.Family || got.Weight != tt.want.Weight || got.Italic != tt.want.Italic || !almostEqual(got.Size, tt.want.Size) {
				t.Errorf("ParseFont(%q) = %+v, want %+v", tt.css, got, tt.want)
			}
		})
	}
}

func TestParseFontErrors(t *testing.T) {
	for _, css := range []string{"", "bold Go", "48px", "-3px Go", "1200 12px Go", "bold"} {
		if _, err := ParseFont(css); !errors.Is(err, ErrInvalidFont) {
			t.Errorf("ParseFont(%q) = %v, want ErrInvalidFont", css, err)
		}
	}
}

func TestFontString(t *testing.T) {
	f := Font{Family: "Go Mono", Size: 20, Weight: 700, Italic: true}
	if got, want := f.String(), "italic 700 20px Go Mono"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := (Font{Family: "Go", Size: 12}).String(), "400 12px Go"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	back, err := ParseFont(f.String())
	if err != nil || back != f {
		t.Errorf("ParseFont(String()) = %+v, %v; want %+v", back, err, f)
	}
}

func TestFontFamilies(t *testing.T) {
	f := Font{Family: ` 'Fira Code' , "GO MONO",monospace,, `}
	got := f.families()
	want := []string{"fira code", "go mono", "monospace"}
	if len(got) != len(want) {
		t.Fatalf("families() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("families()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFontRegistryLookup(t *testing.T) {
	r := NewFontRegistry()

	tests := []struct {
		name string
		font Font
		want []byte
	}{
		{"regular", Font{Family: "Go", Size: 12}, goregular.TTF},
		{"bold", Font{Family: "Go", Size: 12, Weight: 700}, gobold.TTF},
		{"heavy falls to bold", Font{Family: "go", Size: 12, Weight: 900}, gobold.TTF},
		{"semibold prefers bold", Font{Family: "Go", Size: 12, Weight: 600}, gobold.TTF},
		{"medium", Font{Family: "Go", Size: 12, Weight: 500}, gomedium.TTF},
		{"italic", Font{Family: "Go", Size: 12, Italic: true}, goitalic.TTF},
		{"generic monospace", Font{Family: "monospace", Size: 12}, gomono.TTF},
		{"unknown then mono", Font{Family: "Fira Code, Go Mono", Size: 12}, gomono.TTF},
		{"unknown falls back", Font{Family: "Comic Sans MS", Size: 12}, goregular.TTF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.mu.Lock()
			file := r.lookup(tt.font)
			r.mu.Unlock()
			if file == nil {
				t.Fatal("lookup() = nil")
			}
			if &file.data[0] != &tt.want[0] {
				t.Errorf("lookup(%+v) picked the wrong face file", tt.font)
			}
		})
	}
}

func TestFontRegistryFace(t *testing.T) {
	r := NewFontRegistry()
	t.Cleanup(func() { _ = r.Close() })

	face, err := r.Face(Font{Family: "Go", Size: 32, Weight: 700})
	if err != nil {
		t.Fatalf("Face() = %v", err)
	}
	if face.Size() != 32 {
		t.Errorf("face.Size() = %v, want 32", face.Size())
	}
	if face.Advance("Go") <= 0 {
		t.Error("face.Advance() should be positive")
	}

	// The parsed source is cached and shared between faces.
	again, err := r.Face(Font{Family: "Go", Size: 12, Weight: 700})
	if err != nil {
		t.Fatalf("Face() = %v", err)
	}
	if face.Source() != again.Source() {
		t.Error("faces of the same file should share a FontSource")
	}
}

func TestFontRegistryRegister(t *testing.T) {
	r := NewFontRegistry()
	r.Register("Portfolio Sans", 600, false, gobold.TTF)

	r.mu.Lock()
	file := r.lookup(Font{Family: "portfolio sans", Size: 10, Weight: 400})
	r.mu.Unlock()
	if file == nil || &file.data[0] != &gobold.TTF[0] {
		t.Fatal("registered family was not resolved")
	}

	if _, err := r.Face(Font{Family: "Portfolio Sans", Size: 10}); err != nil {
		t.Errorf("Face() of registered family = %v", err)
	}

	r.Register("Broken", 400, false, []byte("not a font"))
	if _, err := r.Face(Font{Family: "Broken", Size: 10}); err == nil {
		t.Error("Face() of invalid font data should fail")
	}
}

func TestFontRegistryRegisterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewFontRegistry()
	if err := r.RegisterFile("Terminal", 400, false, path); err != nil {
		t.Fatalf("RegisterFile() = %v", err)
	}
	if _, err := r.Face(Font{Family: "Terminal", Size: 14}); err != nil {
		t.Errorf("Face() = %v", err)
	}
	if err := r.RegisterFile("Missing", 400, false, filepath.Join(t.TempDir(), "none.ttf")); err == nil {
		t.Error("RegisterFile() of a missing file should fail")
	}
}
