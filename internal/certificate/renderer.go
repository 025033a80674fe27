// Package certificate draws the course completion certificate as a PNG.
package certificate

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	Width  = 800
	Height = 600
)

// Certificate holds what is printed on the image.
type Certificate struct {
	LearnerName string
	CourseTitle string
	Instructor  string
	CompletedAt time.Time
}

// Renderer turns a Certificate into PNG bytes.
type Renderer interface {
	Render(c Certificate) ([]byte, error)
}

type renderer struct {
	regular *truetype.Font
	bold    *truetype.Font
	italic  *truetype.Font
}

var (
	primary    = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	primarySub = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0x1a}
	foreground = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
)

// NewRenderer creates a Renderer. fontPath optionally names a TTF file used
// for every text run; the embedded Go fonts are used otherwise.
func NewRenderer(fontPath string) (Renderer, error) {
	if strings.TrimSpace(fontPath) != "" {
		raw, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		f, err := truetype.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TTF: %w", err)
		}
		return &renderer{regular: f, bold: f, italic: f}, nil
	}

	r := &renderer{}
	for _, src := range []struct {
		dst **truetype.Font
		ttf []byte
	}{
		{&r.regular, goregular.TTF},
		{&r.bold, gobold.TTF},
		{&r.italic, goitalic.TTF},
	} {
		f, err := truetype.Parse(src.ttf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse embedded font: %w", err)
		}
		*src.dst = f
	}
	return r, nil
}

func (r *renderer) Render(c Certificate) ([]byte, error) {
	if strings.TrimSpace(c.CourseTitle) == "" {
		return nil, errors.New("certificate requires a course title")
	}
	name := strings.TrimSpace(c.LearnerName)
	if name == "" {
		name = "Learner"
	}

	dc := gg.NewContext(Width, Height)

	bg := gg.NewLinearGradient(0, 0, Width, Height)
	bg.AddColorStop(0, color.NRGBA{R: 0xf8, G: 0xfa, B: 0xfc, A: 0xff})
	bg.AddColorStop(1, color.NRGBA{R: 0xe2, G: 0xe8, B: 0xf0, A: 0xff})
	dc.SetFillStyle(bg)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	// Frame
	dc.SetColor(primary)
	dc.SetLineWidth(8)
	dc.DrawRectangle(20, 20, Width-40, Height-40)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(40, 40, Width-80, Height-80)
	dc.Stroke()

	// Corner ornaments
	dc.SetColor(primarySub)
	for _, p := range [][2]float64{{100, 100}, {Width - 100, 100}, {100, Height - 100}, {Width - 100, Height - 100}} {
		dc.DrawCircle(p[0], p[1], 40)
		dc.Fill()
	}

	cx := float64(Width) / 2
	r.text(dc, r.bold, 48, primary, "CERTIFICATE", cx, 150)
	r.text(dc, r.italic, 24, primary, "of Course Completion", cx, 180)
	r.text(dc, r.bold, 36, foreground, name, cx, 260)
	r.text(dc, r.regular, 20, foreground, "has successfully completed the course", cx, 300)
	r.text(dc, r.bold, 28, primary, fmt.Sprintf("\"%s\"", c.CourseTitle), cx, 340)
	if c.Instructor != "" {
		r.text(dc, r.regular, 18, foreground, "Instructor: "+c.Instructor, cx, 380)
	}
	if !c.CompletedAt.IsZero() {
		r.text(dc, r.regular, 16, foreground, "Completed on "+c.CompletedAt.Format("January 2, 2006"), cx, 420)
	}

	// Signature line
	dc.SetColor(foreground)
	dc.SetLineWidth(1)
	dc.DrawLine(520, 480, 680, 480)
	dc.Stroke()
	r.text(dc, r.regular, 14, foreground, "Instructor signature", 600, 500)

	dc.SetColor(primary)
	drawStar(dc, 200, 470, 22, 10)
	dc.Fill()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// text draws s horizontally centred on x with its baseline at y.
func (r *renderer) text(dc *gg.Context, f *truetype.Font, size float64, c color.Color, s string, x, y float64) {
	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}))
	dc.SetColor(c)
	dc.DrawStringAnchored(s, x, y, 0.5, 0)
}

func drawStar(dc *gg.Context, x, y, outer, inner float64) {
	for i := 0; i < 10; i++ {
		rad := outer
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		px, py := x+rad*math.Cos(a), y+rad*math.Sin(a)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
}
