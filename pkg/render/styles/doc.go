// Package styles draws scene elements as SVG fragments.
//
// A [Style] writes one element at a time into a buffer; the sink decides
// the order (connectors first, then boxes, then labels). [Simple] is the
// chart style used by the web client: gender-tinted rounded boxes, solid
// blue step connectors between generations and dashed grey connectors
// between spouses.
//
// The palette is fixed:
//
//	male         #DBEAFE
//	female       #FCE7F3
//	unspecified  #F3F4F6
//	hierarchy    #3B82F6, 2px, solid
//	spouse       #9CA3AF, 1.5px, dashed
package styles
