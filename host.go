package textfx

import "sync"

// Host is the text element the effect attaches to.
//
// Bounds is read on initialization and on every resize; Text and Font are
// read whenever the mask is regenerated.
type Host interface {
	// Text returns the string the particle field is shaped into.
	Text() string
	// Font returns the computed font of the text.
	Font() Font
	// Bounds returns the current layout size in device pixels.
	Bounds() (width, height int)
}

// Element is an in-memory Host. Window integrations update its bounds from
// their resize notifications.
//
// Element is safe for concurrent use.
type Element struct {
	mu     sync.RWMutex
	text   string
	font   Font
	width  int
	height int
}

// NewElement creates an Element.
func NewElement(text string, font Font, width, height int) *Element {
	return &Element{text: text, font: font, width: width, height: height}
}

// Text implements Host.
func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// Font implements Host.
func (e *Element) Font() Font {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.font
}

// Bounds implements Host.
func (e *Element) Bounds() (width, height int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.width, e.height
}

// SetText replaces the text. It takes effect on the next mask regeneration.
func (e *Element) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
}

// SetFont replaces the font. It takes effect on the next mask regeneration.
func (e *Element) SetFont(font Font) {
	e.mu.Lock()
	e.font = font
	e.mu.Unlock()
}

// SetBounds records a new layout size and reports whether it changed.
// Negative values are treated as zero.
func (e *Element) SetBounds(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.width == width && e.height == height {
		return false
	}
	e.width, e.height = width, height
	return true
}
