package dial

import (
	"fmt"
	"io"
	"text/template"
)

// SVGOptions controls a static SVG export of a dial.
type SVGOptions struct {
	Size      float64 // viewport width and height
	Stroke    float64
	TrackFill string
	ArcFill   string
	Readout   string // large center text
	Caption   string // small text under the readout
}

// DefaultSVGOptions matches the reference 200px gauge.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Size:      200,
		Stroke:    14,
		TrackFill: "#403E3C",
		ArcFill:   "#3AA99F",
	}
}

type svgData struct {
	SVGOptions
	Track, Fill    string
	HasFill        bool
	Draggable      bool
	CX, CY, Radius float64
	Handle         Point
	HandleR        float64
	Title          string
	ReadoutSize    float64
	CaptionSize    float64
	CaptionY       float64
}

var svgTmpl = template.Must(template.New("dial").Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{.Size}}" height="{{.Size}}" viewBox="0 0 {{.Size}} {{.Size}}">
  <title>{{.Title}}</title>
  <path d="{{.Track}}" fill="none" stroke="{{.TrackFill}}" stroke-width="{{.Stroke}}" stroke-linecap="round"/>
{{- if .HasFill}}
  <path d="{{.Fill}}" fill="none" stroke="{{.ArcFill}}" stroke-width="{{.Stroke}}" stroke-linecap="round"/>
{{- end}}
{{- if .Draggable}}
  <circle cx="{{printf "%.2f" .Handle.X}}" cy="{{printf "%.2f" .Handle.Y}}" r="{{printf "%.2f" .HandleR}}" fill="#FFFCF0" stroke="{{.ArcFill}}" stroke-width="2"/>
{{- end}}
  <text x="{{.CX}}" y="{{.CY}}" text-anchor="middle" font-size="{{printf "%.0f" .ReadoutSize}}" font-weight="bold">{{.Readout}}</text>
  <text x="{{.CX}}" y="{{printf "%.2f" .CaptionY}}" text-anchor="middle" font-size="{{printf "%.0f" .CaptionSize}}">{{.Caption}}</text>
</svg>
`))

// WriteSVG draws d's gauge, with the drag handle for draggable modes, as a
// standalone SVG document. The arcs use the same geometry as the terminal
// renderer: DescribeArc from StartAngle to the value angle.
func WriteSVG(w io.Writer, d *Dial, opts SVGOptions) error {
	if opts.Size <= 0 {
		return fmt.Errorf("svg size must be positive")
	}
	c := opts.Size / 2
	r := c - opts.Stroke
	cfg := d.Config()
	angle := d.ValueAngle()

	data := svgData{
		SVGOptions:  opts,
		Track:       DescribeArc(c, c, r, cfg.StartAngle, cfg.EndAngle).String(),
		Fill:        DescribeArc(c, c, r, cfg.StartAngle, angle).String(),
		HasFill:     angle > cfg.StartAngle,
		Draggable:   d.Draggable(),
		CX:          c,
		CY:          c,
		Radius:      r,
		Handle:      PolarToCartesian(c, c, r, angle),
		HandleR:     r * cfg.HandleHitRatio,
		Title:       template.HTMLEscapeString(d.Title()),
		ReadoutSize: opts.Size / 8,
		CaptionSize: opts.Size / 16,
		CaptionY:    c + opts.Size/9,
	}
	data.Readout = template.HTMLEscapeString(opts.Readout)
	data.Caption = template.HTMLEscapeString(opts.Caption)
	return svgTmpl.Execute(w, data)
}
