package wallpaper

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
)

// ViewBox is the view box of a parsed SVG document
type ViewBox struct {
	X, Y, W, H float64
}

// AspectRatio returns W/H, or 0 when the view box is degenerate
func (v ViewBox) AspectRatio() float64 {
	if v.W <= 0 || v.H <= 0 {
		return 0
	}
	return v.W / v.H
}

// Inspect parses SVG markup and returns its view box. Markup whose root
// element is not <svg>, or that oksvg cannot read, is an error.
func Inspect(svg []byte) (ViewBox, error) {
	if err := checkRoot(svg); err != nil {
		return ViewBox{}, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return ViewBox{}, fmt.Errorf("failed to parse SVG: %w", err)
	}

	return ViewBox{
		X: icon.ViewBox.X,
		Y: icon.ViewBox.Y,
		W: icon.ViewBox.W,
		H: icon.ViewBox.H,
	}, nil
}

// TextNode is one <text> element of an SVG document. Coordinates and font
// size are in view box units.
type TextNode struct {
	X, Y     float64
	FontSize float64
	Fill     string
	Anchor   string
	Baseline string
	Text     string
}

// defaultFontSize is the SVG initial value of font-size
const defaultFontSize = 16

// ExtractText returns the <text> elements of an SVG document in document
// order. Character data of nested <tspan> elements is folded into the
// enclosing text; empty texts are skipped.
func ExtractText(svg []byte) ([]TextNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(svg))

	var (
		nodes []TextNode
		cur   *TextNode
		buf   strings.Builder
		depth int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nodes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse SVG: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if cur != nil {
				depth++
				continue
			}
			if t.Name.Local == "text" {
				n := newTextNode(t.Attr)
				cur = &n
				buf.Reset()
				depth = 0
			}
		case xml.EndElement:
			if cur == nil {
				continue
			}
			if depth > 0 {
				depth--
				continue
			}
			cur.Text = strings.TrimSpace(buf.String())
			if cur.Text != "" {
				nodes = append(nodes, *cur)
			}
			cur = nil
		case xml.CharData:
			if cur != nil {
				buf.Write(t)
			}
		}
	}
}

func newTextNode(attrs []xml.Attr) TextNode {
	n := TextNode{FontSize: defaultFontSize}
	for _, a := range attrs {
		switch a.Name.Local {
		case "x":
			n.X = parseLength(a.Value)
		case "y":
			n.Y = parseLength(a.Value)
		case "font-size":
			if v := parseLength(a.Value); v > 0 {
				n.FontSize = v
			}
		case "fill":
			n.Fill = strings.TrimSpace(a.Value)
		case "text-anchor":
			n.Anchor = strings.TrimSpace(a.Value)
		case "alignment-baseline", "dominant-baseline":
			n.Baseline = strings.TrimSpace(a.Value)
		}
	}
	return n
}

// parseLength reads the first coordinate of an attribute such as "540.0",
// "12px" or "10 20 30". Anything else is 0.
func parseLength(s string) float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "px"), 64)
	if err != nil {
		return 0
	}
	return v
}

func checkRoot(svg []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty SVG document")
		}
		if err != nil {
			return fmt.Errorf("failed to parse SVG: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			if start.Name.Local != "svg" {
				return fmt.Errorf("unexpected root element <%s>", start.Name.Local)
			}
			return nil
		}
	}
}
