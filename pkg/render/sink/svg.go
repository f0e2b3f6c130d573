package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/familytree/pkg/render"
	"github.com/matzehuels/familytree/pkg/render/styles"
)

const interactionCSS = `
    .person { transition: stroke-width 0.2s ease; }
    .person.highlight { stroke-width: 3; }
    .edge.highlight { stroke-width: 3.5; }
    .edge.dim, .person.dim { opacity: 0.35; }`

const interactionJS = `
    function highlight(id) {
      const related = new Set([id]);
      document.querySelectorAll('.edge').forEach(e => {
        const on = e.dataset.from === id || e.dataset.to === id;
        e.classList.toggle('highlight', on);
        e.classList.toggle('dim', !on);
        if (on) { related.add(e.dataset.from); related.add(e.dataset.to); }
      });
      document.querySelectorAll('.person').forEach(p => {
        const pid = p.id.replace('person-', '');
        p.classList.toggle('highlight', pid === id);
        p.classList.toggle('dim', !related.has(pid));
      });
    }
    function clearHighlight() {
      document.querySelectorAll('.person, .edge').forEach(el => el.classList.remove('highlight', 'dim'));
    }
    document.querySelectorAll('.person').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.id.replace('person-', '')));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	title       string
	interactive bool
}

// WithStyle sets the drawing style.
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithTitle adds a <title> element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithoutInteraction omits the hover script, for static exports.
func WithoutInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

// RenderSVG renders a scene as a standalone SVG document.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(r.title))
	}

	r.style.RenderDefs(&buf)
	for _, c := range s.Connectors {
		r.style.RenderConnector(&buf, c)
	}
	for _, b := range s.Boxes {
		r.style.RenderBox(&buf, b)
	}
	for _, b := range s.Boxes {
		r.style.RenderText(&buf, b)
	}

	if r.interactive && len(s.Boxes) > 0 {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
