package textfx

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/text/cases"
)

// Font weights used by the built-in families.
const (
	WeightNormal = 400
	WeightMedium = 500
	WeightBold   = 700
)

// DefaultFamily is the family used when none of the requested ones is known.
const DefaultFamily = "Go"

// Font describes the computed style of the text element the mask is built
// from.
type Font struct {
	// Family is a CSS family list, e.g. `"Go Mono", monospace`.
	Family string
	// Size is the font size in pixels.
	Size float64
	// Weight is the CSS numeric weight; 0 means 400.
	Weight int
	Italic bool
}

// String formats f as a CSS font shorthand.
func (f Font) String() string {
	var b strings.Builder
	if f.Italic {
		b.WriteString("italic ")
	}
	fmt.Fprintf(&b, "%d %gpx %s", f.weight(), f.Size, f.Family)
	return b.String()
}

func (f Font) weight() int {
	if f.Weight <= 0 {
		return WeightNormal
	}
	return f.Weight
}

// families returns the folded family names in preference order.
func (f Font) families() []string {
	fold := cases.Fold()
	var out []string
	for _, name := range strings.Split(f.Family, ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if name == "" {
			continue
		}
		out = append(out, fold.String(name))
	}
	return out
}

// ParseFont parses a CSS font shorthand value such as
// `italic 700 64px/1.2 "Go Mono", monospace`. Size units px, pt, em and rem
// are understood; em and rem are relative to 16px.
func ParseFont(css string) (Font, error) {
	fields := strings.Fields(css)
	f := Font{Weight: WeightNormal}

	for i, tok := range fields {
		switch lower := strings.ToLower(tok); lower {
		case "normal", "small-caps":
			continue
		case "italic", "oblique":
			f.Italic = true
			continue
		case "bold", "bolder":
			f.Weight = WeightBold
			continue
		case "lighter":
			f.Weight = 300
			continue
		default:
			if w, err := strconv.Atoi(lower); err == nil {
				if w < 1 || w > 1000 {
					return Font{}, fmt.Errorf("%w: weight %d out of range", ErrInvalidFont, w)
				}
				f.Weight = w
				continue
			}
		}

		size, err := parseFontSize(tok)
		if err != nil {
			return Font{}, fmt.Errorf("%w: %q: %w", ErrInvalidFont, css, err)
		}
		f.Size = size
		f.Family = strings.Join(fields[i+1:], " ")
		if f.Family == "" {
			return Font{}, fmt.Errorf("%w: %q has no family", ErrInvalidFont, css)
		}
		return f, nil
	}
	return Font{}, fmt.Errorf("%w: %q has no size", ErrInvalidFont, css)
}

func parseFontSize(tok string) (float64, error) {
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	units := []struct {
		suffix string
		scale  float64
	}{
		{"rem", 16},
		{"px", 1},
		{"pt", 4.0 / 3.0},
		{"em", 16},
	}
	for _, u := range units {
		if num, ok := strings.CutSuffix(strings.ToLower(tok), u.suffix); ok {
			v, err := strconv.ParseFloat(num, 64)
			if err != nil || v <= 0 {
				return 0, fmt.Errorf("bad size %q", tok)
			}
			return v * u.scale, nil
		}
	}
	return 0, fmt.Errorf("unexpected token %q", tok)
}

// fontFile is one registered face file. Its source is parsed on first use.
type fontFile struct {
	weight int
	italic bool
	data   []byte
	source *text.FontSource
}

// FontRegistry maps family names to font files and caches parsed sources.
// The zero value is not usable; create registries with NewFontRegistry.
//
// FontRegistry is safe for concurrent use.
type FontRegistry struct {
	mu       sync.Mutex
	families map[string][]*fontFile
	aliases  map[string]string
}

// NewFontRegistry returns a registry preloaded with the Go font families:
// "Go", "Go Medium", "Go Mono" and "Go Smallcaps". The generic families
// sans-serif, serif, system-ui and cursive resolve to "Go"; monospace
// resolves to "Go Mono".
func NewFontRegistry() *FontRegistry {
	r := &FontRegistry{
		families: make(map[string][]*fontFile),
		aliases: map[string]string{
			"sans-serif": "go",
			"serif":      "go",
			"system-ui":  "go",
			"cursive":    "go",
			"fantasy":    "go",
			"monospace":  "go mono",
		},
	}

	r.Register("Go", WeightNormal, false, goregular.TTF)
	r.Register("Go", WeightNormal, true, goitalic.TTF)
	r.Register("Go", WeightMedium, false, gomedium.TTF)
	r.Register("Go", WeightMedium, true, gomediumitalic.TTF)
	r.Register("Go", WeightBold, false, gobold.TTF)
	r.Register("Go", WeightBold, true, gobolditalic.TTF)

	r.Register("Go Medium", WeightNormal, false, gomedium.TTF)
	r.Register("Go Medium", WeightNormal, true, gomediumitalic.TTF)

	r.Register("Go Mono", WeightNormal, false, gomono.TTF)
	r.Register("Go Mono", WeightNormal, true, gomonoitalic.TTF)
	r.Register("Go Mono", WeightBold, false, gomonobold.TTF)
	r.Register("Go Mono", WeightBold, true, gomonobolditalic.TTF)

	r.Register("Go Smallcaps", WeightNormal, false, gosmallcaps.TTF)
	r.Register("Go Smallcaps", WeightNormal, true, gosmallcapsitalic.TTF)
	return r
}

// Register adds TTF or OTF data for a family at a weight and slant.
// Registering the same family, weight and slant again replaces the data.
func (r *FontRegistry) Register(family string, weight int, italic bool, data []byte) {
	key := cases.Fold().String(strings.TrimSpace(family))
	if weight <= 0 {
		weight = WeightNormal
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	files := r.families[key]
	for i, f := range files {
		if f.weight == weight && f.italic == italic {
			files[i] = &fontFile{weight: weight, italic: italic, data: data}
			return
		}
	}
	r.families[key] = append(files, &fontFile{weight: weight, italic: italic, data: data})
}

// RegisterFile reads a font file from disk and registers it.
func (r *FontRegistry) RegisterFile(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // font path is provided by the user
	if err != nil {
		return fmt.Errorf("textfx: failed to read font file: %w", err)
	}
	r.Register(family, weight, italic, data)
	return nil
}

// Face resolves f to a font face. The first known family in f.Family wins;
// unknown families fall back to DefaultFamily. Within a family the file with
// the matching slant and nearest weight is chosen.
func (r *FontRegistry) Face(f Font) (text.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	file := r.lookup(f)
	if file == nil {
		return nil, fmt.Errorf("%w: no font registered for %q", ErrInvalidFont, f.Family)
	}
	if file.source == nil {
		src, err := text.NewFontSource(file.data)
		if err != nil {
			return nil, fmt.Errorf("textfx: failed to parse font for %q: %w", f.Family, err)
		}
		file.source = src
	}
	return file.source.Face(f.Size), nil
}

// lookup must be called with r.mu held.
func (r *FontRegistry) lookup(f Font) *fontFile {
	candidates := append(f.families(), cases.Fold().String(DefaultFamily))
	for _, name := range candidates {
		if alias, ok := r.aliases[name]; ok {
			name = alias
		}
		if files := r.families[name]; len(files) > 0 {
			Logger().Debug("textfx: font resolved", "requested", f.Family, "family", name)
			return nearest(files, f.weight(), f.Italic)
		}
	}
	return nil
}

func nearest(files []*fontFile, weight int, italic bool) *fontFile {
	var best *fontFile
	bestScore := 0
	for _, f := range files {
		score := abs(f.weight - weight)
		if f.italic != italic {
			score += 10000
		}
		// Ties above medium resolve to the heavier face, as CSS does.
		heavier := best != nil && score == bestScore && weight > WeightMedium && f.weight > best.weight
		if best == nil || score < bestScore || heavier {
			best, bestScore = f, score
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Close releases every parsed font source.
func (r *FontRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, files := range r.families {
		for _, f := range files {
			if f.source != nil {
				_ = f.source.Close()
				f.source = nil
			}
		}
	}
	return nil
}
