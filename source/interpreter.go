package source

import (
	"strings"

	"github.com/tsawler/tabula/contentstream"
	"github.com/tsawler/tabula/core"
	"github.com/tsawler/tabula/font"
	"github.com/tsawler/tabula/graphicsstate"
	"github.com/tsawler/tabula/model"
)

// defaultGlyphWidth is used for glyphs of unregistered fonts, in 1000ths of
// an em.
const defaultGlyphWidth = 500.0

// glyph is one shown character in user space.
type glyph struct {
	text    string
	x0, x1  float64
	y0, y1  float64
	size    float64
	upright bool
}

// placement is an XObject drawn with the Do operator.
type placement struct {
	name   string
	x0, x1 float64
	y0, y1 float64
}

// interpreter replays a content stream, recording glyph boxes and XObject
// placements.
type interpreter struct {
	gs    *graphicsstate.GraphicsState
	fonts map[string]*font.Font

	glyphs     []glyph
	placements []placement
}

func newInterpreter(fonts map[string]*font.Font) *interpreter {
	if fonts == nil {
		fonts = map[string]*font.Font{}
	}
	return &interpreter{
		gs:    graphicsstate.NewGraphicsState(),
		fonts: fonts,
	}
}

// run processes operations in order. A graphics state underflow is ignored;
// malformed streams still yield what was drawn before the fault.
func (in *interpreter) run(ops []contentstream.Operation) {
	for _, op := range ops {
		in.process(op)
	}
}

func (in *interpreter) process(op contentstream.Operation) {
	gs := in.gs
	switch op.Operator {
	// Graphics state
	case "q":
		gs.Save()
	case "Q":
		_ = gs.Restore()
	case "cm":
		if len(op.Operands) == 6 {
			// The new matrix applies before the current CTM.
			gs.CTM = operandsToMatrix(op.Operands).Multiply(gs.CTM)
		}

	// Text state
	case "BT":
		gs.BeginText()
	case "Tf":
		if len(op.Operands) == 2 {
			if name, ok := op.Operands[0].(core.Name); ok {
				if size, ok := toFloat(op.Operands[1]); ok {
					gs.SetFont(fontKey(string(name)), size)
				}
			}
		}
	case "Tc":
		if v, ok := singleFloat(op); ok {
			gs.SetCharSpacing(v)
		}
	case "Tw":
		if v, ok := singleFloat(op); ok {
			gs.SetWordSpacing(v)
		}
	case "Tz":
		if v, ok := singleFloat(op); ok {
			gs.SetHorizontalScaling(v)
		}
	case "TL":
		if v, ok := singleFloat(op); ok {
			gs.SetLeading(v)
		}
	case "Ts":
		if v, ok := singleFloat(op); ok {
			gs.SetTextRise(v)
		}

	// Text positioning
	case "Tm":
		if len(op.Operands) == 6 {
			gs.SetTextMatrix(operandsToMatrix(op.Operands))
		}
	case "Td":
		if len(op.Operands) == 2 {
			tx, _ := toFloat(op.Operands[0])
			ty, _ := toFloat(op.Operands[1])
			in.moveLine(tx, ty)
		}
	case "TD":
		if len(op.Operands) == 2 {
			tx, _ := toFloat(op.Operands[0])
			ty, _ := toFloat(op.Operands[1])
			gs.SetLeading(-ty)
			in.moveLine(tx, ty)
		}
	case "T*":
		in.moveLine(0, -gs.Text.Leading)

	// Text showing
	case "Tj":
		if len(op.Operands) == 1 {
			if s, ok := op.Operands[0].(core.String); ok {
				in.show([]byte(s))
			}
		}
	case "TJ":
		if len(op.Operands) == 1 {
			if arr, ok := op.Operands[0].(core.Array); ok {
				in.showArray(arr)
			}
		}
	case "'":
		in.moveLine(0, -gs.Text.Leading)
		if len(op.Operands) == 1 {
			if s, ok := op.Operands[0].(core.String); ok {
				in.show([]byte(s))
			}
		}
	case "\"":
		if len(op.Operands) == 3 {
			if v, ok := toFloat(op.Operands[0]); ok {
				gs.SetWordSpacing(v)
			}
			if v, ok := toFloat(op.Operands[1]); ok {
				gs.SetCharSpacing(v)
			}
			in.moveLine(0, -gs.Text.Leading)
			if s, ok := op.Operands[2].(core.String); ok {
				in.show([]byte(s))
			}
		}

	// XObjects
	case "Do":
		if len(op.Operands) == 1 {
			if name, ok := op.Operands[0].(core.Name); ok {
				in.place(strings.TrimPrefix(string(name), "/"))
			}
		}
	}
}

// moveLine starts a new line offset from the start of the current one, in
// text space.
func (in *interpreter) moveLine(tx, ty float64) {
	t := &in.gs.Text
	t.TextLineMatrix = model.Translate(tx, ty).Multiply(t.TextLineMatrix)
	t.TextMatrix = t.TextLineMatrix
}

// advance moves the text matrix along the baseline, in text space.
func (in *interpreter) advance(tx float64) {
	t := &in.gs.Text
	t.TextMatrix = model.Translate(tx, 0).Multiply(t.TextMatrix)
}

// show records one glyph per decoded character and advances the text
// position past them.
func (in *interpreter) show(data []byte) {
	t := in.gs.Text
	f := in.fonts[t.FontName]

	var decoded string
	if f != nil {
		decoded = f.DecodeString(data)
	} else {
		decoded = string(data)
	}

	fs := t.FontSize
	th := t.HorizontalScaling / 100
	for _, r := range decoded {
		w := defaultGlyphWidth
		if f != nil {
			if fw := f.GetWidth(r); fw > 0 {
				w = fw
			}
		}
		glyphWidth := w / 1000 * fs * th

		// Glyph box in text space, mapped through the text matrix and CTM.
		m := in.gs.Text.TextMatrix.Multiply(in.gs.CTM)
		x0, y0, x1, y1 := bounds(m, 0, t.Rise, glyphWidth, t.Rise+fs)
		in.glyphs = append(in.glyphs, glyph{
			text:    string(r),
			x0:      x0,
			x1:      x1,
			y0:      y0,
			y1:      y1,
			size:    fs * scaleOf(m),
			upright: isUpright(m),
		})

		tx := w/1000*fs + t.CharSpacing
		if r == ' ' {
			tx += t.WordSpacing
		}
		in.advance(tx * th)
	}
}

// showArray handles TJ: strings are shown, numbers move the text position
// back by thousandths of an em.
func (in *interpreter) showArray(arr core.Array) {
	for _, item := range arr {
		switch v := item.(type) {
		case core.String:
			in.show([]byte(v))
		case core.Int, core.Real:
			n, _ := toFloat(v)
			t := in.gs.Text
			in.advance(-n / 1000 * t.FontSize * t.HorizontalScaling / 100)
		}
	}
}

// place records an XObject drawn into the unit square of the CTM.
func (in *interpreter) place(name string) {
	x0, y0, x1, y1 := bounds(in.gs.CTM, 0, 0, 1, 1)
	in.placements = append(in.placements, placement{name: name, x0: x0, y0: y0, x1: x1, y1: y1})
}

// bounds maps a rectangle through m and returns the axis-aligned bounds of
// the result.
func bounds(m model.Matrix, ax, ay, bx, by float64) (x0, y0, x1, y1 float64) {
	corners := [4]model.Point{
		m.Transform(model.Point{X: ax, Y: ay}),
		m.Transform(model.Point{X: bx, Y: ay}),
		m.Transform(model.Point{X: ax, Y: by}),
		m.Transform(model.Point{X: bx, Y: by}),
	}
	x0, y0 = corners[0].X, corners[0].Y
	x1, y1 = x0, y0
	for _, p := range corners[1:] {
		if p.X < x0 {
			x0 = p.X
		}
		if p.X > x1 {
			x1 = p.X
		}
		if p.Y < y0 {
			y0 = p.Y
		}
		if p.Y > y1 {
			y1 = p.Y
		}
	}
	return x0, y0, x1, y1
}

// isUpright reports whether m keeps text horizontal and left to right.
func isUpright(m model.Matrix) bool {
	const eps = 1e-6
	return abs(m[1]) < eps && abs(m[2]) < eps && m[0] > 0 && m[3] > 0
}

// scaleOf returns the vertical scale m applies to glyphs.
func scaleOf(m model.Matrix) float64 {
	s := abs(m[3])
	if b := abs(m[1]); !isUpright(m) && b > s {
		s = b
	}
	return s
}

// fontKey normalizes a resource name to the "/Name" form tabula registers
// fonts under.
func fontKey(name string) string {
	if strings.HasPrefix(name, "/") {
		return name
	}
	return "/" + name
}

func singleFloat(op contentstream.Operation) (float64, bool) {
	if len(op.Operands) != 1 {
		return 0, false
	}
	return toFloat(op.Operands[0])
}

func toFloat(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	default:
		return 0, false
	}
}

func operandsToMatrix(operands []core.Object) model.Matrix {
	var m model.Matrix
	for i := 0; i < 6 && i < len(operands); i++ {
		m[i], _ = toFloat(operands[i])
	}
	return m
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
