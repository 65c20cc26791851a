package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/bubblenav/internal/sim"
)

type ExportData struct {
	RunMetadata
	FrameData []ExportFrame `json:"frame_data"`
}

type ExportFrame struct {
	Tick    int          `json:"tick"`
	Epoch   int          `json:"epoch"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Bubbles []ExportBody `json:"bubbles"`
}

type ExportBody struct {
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Stopped bool    `json:"stopped"`
}

func ExportJSON(w io.Writer, meta RunMetadata, frames []sim.Frame) error {
	data := ExportData{
		RunMetadata: meta,
		FrameData:   make([]ExportFrame, len(frames)),
	}

	for i, f := range frames {
		ef := ExportFrame{
			Tick:    f.Tick,
			Epoch:   f.Epoch,
			Width:   f.Viewport.Width,
			Height:  f.Viewport.Height,
			Bubbles: make([]ExportBody, len(f.Bodies)),
		}
		for j, b := range f.Bodies {
			ef.Bubbles[j] = ExportBody{Label: b.Label, X: b.X, Y: b.Y, VX: b.VX, VY: b.VY, Stopped: b.Stopped}
		}
		data.FrameData[i] = ef
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// WriteFrames writes one CSV row per bubble per frame.
func WriteFrames(w io.Writer, frames []sim.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(framesHeader); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, f := range frames {
		for _, b := range f.Bodies {
			row := []string{
				strconv.Itoa(f.Tick),
				strconv.Itoa(f.Epoch),
				ff(f.Viewport.Width),
				ff(f.Viewport.Height),
				b.Label,
				ff(b.X),
				ff(b.Y),
				ff(b.VX),
				ff(b.VY),
				strconv.FormatBool(b.Stopped),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
