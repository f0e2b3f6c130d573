package styles

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/familytree/pkg/render"
)

const (
	boxStroke      = "#6B7280"
	favoriteStroke = "#F59E0B"
	textColor      = "#111827"
	sublineColor   = "#4B5563"
	cornerRadius   = 8
)

// Simple is the default chart style.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <filter id="shadow" x="-10%" y="-10%" width="120%" height="140%">
      <feDropShadow dx="0" dy="1" stdDeviation="1.5" flood-opacity="0.15"/>
    </filter>
  </defs>
`)
}

func (Simple) RenderBox(buf *bytes.Buffer, b render.Box) {
	stroke, width := boxStroke, 1.0
	class := "person " + string(b.Gender)
	if b.Favorite {
		stroke, width = favoriteStroke, 3
		class += " favorite"
	}
	fmt.Fprintf(buf, `  <rect id="person-%d" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%d" ry="%d" fill="%s" stroke="%s" stroke-width="%.1f" filter="url(#shadow)"/>`+"\n",
		b.PersonID, class, b.X, b.Y, b.W, b.H, cornerRadius, cornerRadius, Fill(b.Gender), stroke, width)
}

func (Simple) RenderConnector(buf *bytes.Buffer, c render.Connector) {
	if len(c.Points) < 2 {
		return
	}
	s := StrokeFor(c.Class)
	pts := make([]string, len(c.Points))
	for i, p := range c.Points {
		pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	dash := ""
	if s.Dash != "" {
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, s.Dash)
	}
	fmt.Fprintf(buf, `  <polyline class="edge %s" data-from="%d" data-to="%d" points="%s" fill="none" stroke="%s" stroke-width="%.1f"%s/>`+"\n",
		c.Class, c.From, c.To, strings.Join(pts, " "), s.Color, s.Width, dash)
}

func (Simple) RenderText(buf *bytes.Buffer, b render.Box) {
	label := TruncateLabel(b.Label, b.W, labelFontSize)
	if b.Subline == "" {
		fmt.Fprintf(buf, `  <text class="person-text" data-person="%d" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.0f" font-weight="600" fill="%s">%s</text>`+"\n",
			b.PersonID, b.CX, b.CY, labelFontSize, textColor, EscapeXML(label))
		return
	}
	fmt.Fprintf(buf, `  <text class="person-text" data-person="%d" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.0f" font-weight="600" fill="%s">%s</text>`+"\n",
		b.PersonID, b.CX, b.CY-sublineFontSize*0.7, labelFontSize, textColor, EscapeXML(label))
	fmt.Fprintf(buf, `  <text class="person-subline" data-person="%d" x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
		b.PersonID, b.CX, b.CY+labelFontSize*0.7, sublineFontSize, sublineColor, EscapeXML(b.Subline))
}
