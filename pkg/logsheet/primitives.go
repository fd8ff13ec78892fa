package logsheet

// Drawing primitives produced by the sheet renderer. Coordinates are in
// millimeters on a US-letter portrait canvas; the export collaborator paints
// them onto whatever document surface it targets.

const (
	PageWidth  = 215.9
	PageHeight = 279.4
	Margin     = 20.0

	ContentWidth = PageWidth - 2*Margin
)

type PrimitiveKind string

const (
	KindLine PrimitiveKind = "line"
	KindRect PrimitiveKind = "rect"
	KindText PrimitiveKind = "text"
)

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Primitive is one drawing operation. Kind decides which fields are
// meaningful: lines use X,Y,X2,Y2; rects use X,Y,W,H; texts use X,Y,Value
// plus the font fields. A flat shape keeps the page JSON-serializable for the
// export collaborator without a type registry.
type Primitive struct {
	Kind      PrimitiveKind `json:"kind"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
	X2        float64       `json:"x2,omitempty"`
	Y2        float64       `json:"y2,omitempty"`
	W         float64       `json:"w,omitempty"`
	H         float64       `json:"h,omitempty"`
	Value     string        `json:"value,omitempty"`
	Size      float64       `json:"size,omitempty"`
	Bold      bool          `json:"bold,omitempty"`
	Align     Align         `json:"align,omitempty"`
	MaxWidth  float64       `json:"maxWidth,omitempty"`
	LineWidth float64       `json:"lineWidth,omitempty"`
	Dashed    bool          `json:"dashed,omitempty"`
}

// Page is one rendered daily-log sheet: an ordered primitive list plus the
// metadata the assembler stamps on it.
type Page struct {
	Number      int         `json:"number"`
	Total       int         `json:"total"`
	Date        string      `json:"date"`
	Placeholder bool        `json:"placeholder,omitempty"`
	Primitives  []Primitive `json:"primitives"`
}

// Document is the full multi-day export, one page per daily log.
type Document struct {
	Pages []Page `json:"pages"`
}

func line(x1, y1, x2, y2, width float64) Primitive {
	return Primitive{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width}
}

func dashedLine(x1, y1, x2, y2, width float64) Primitive {
	return Primitive{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, LineWidth: width, Dashed: true}
}

func rect(x, y, w, h, width float64) Primitive {
	return Primitive{Kind: KindRect, X: x, Y: y, W: w, H: h, LineWidth: width}
}

func text(x, y float64, value string, size float64) Primitive {
	return Primitive{Kind: KindText, X: x, Y: y, Value: value, Size: size}
}
