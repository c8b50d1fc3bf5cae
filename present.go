package textfx

import "github.com/gogpu/gg"

// Flatten composites the last frame over the opaque color bg and returns
// the result as width*height*4 RGBA bytes. dst is reused when it has enough
// capacity. A surface without area returns dst[:0].
//
// Window and terminal hosts present frames through Flatten.
func (s *Surface) Flatten(dst []byte, bg gg.RGBA) []byte {
	pm := s.Pixmap()
	if pm == nil {
		return dst[:0]
	}
	src := pm.Data()
	if cap(dst) < len(src) {
		dst = make([]byte, len(src))
	}
	dst = dst[:len(src)]

	br := to255(bg.R)
	bgG := to255(bg.G)
	bb := to255(bg.B)
	for i := 0; i < len(src); i += 4 {
		inv := 255 - uint32(src[i+3])
		dst[i+0] = uint8(uint32(src[i+0]) + (br*inv+127)/255)
		dst[i+1] = uint8(uint32(src[i+1]) + (bgG*inv+127)/255)
		dst[i+2] = uint8(uint32(src[i+2]) + (bb*inv+127)/255)
		dst[i+3] = 255
	}
	return dst
}

func to255(v float64) uint32 {
	return uint32(min(max(v, 0), 1)*255 + 0.5)
}
