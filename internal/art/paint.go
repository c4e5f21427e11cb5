package art

import (
	"fmt"
	"strings"
)

// paint serializes the shapes into one SVG document. The view box is inset
// by the line stroke offset on every side.
func paint(width int, shapes []*Shape, p Params) string {
	offset := strokeOffset(p.LineThickness)
	o := num(offset)
	size := num(float64(width*Unit) - 2*offset)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`, o, o, size, size))
	sb.WriteString(fmt.Sprintf("<filter id=\"glow\">\n  <feGaussianBlur stdDeviation=\"%s\"/>\n  <feComposite in2=\"SourceGraphic\" operator=\"over\"/>\n</filter>", num(p.GlowStrength)))
	sb.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`, o, o, size, size, p.Background))

	for _, s := range shapes {
		if s.path.Len() == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="%s" filter="url(#glow)" d="%s"/>`, s.Color, s.Path()))
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}
