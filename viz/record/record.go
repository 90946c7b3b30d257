// Package record provides an in-memory viewer sink that captures every
// log call as a pure data record. It backs offline replay and tests; it
// has no rendering dependencies, only data types.
package record

import "github.com/teleoviz/teleoviz/viz"

// ScalarRecord captures a single scalar append.
type ScalarRecord struct {
	Path   string
	Cursor int64
	Value  float64
}

// ImageRecord captures a single image append with the normalized frame's
// dimensions and channel order.
type ImageRecord struct {
	Path     string
	Cursor   int64
	Height   int
	Width    int
	Channels int
	Order    viz.ChannelOrder
}

// TextRecord captures a single diagnostic text append.
type TextRecord struct {
	Path    string
	Cursor  int64
	Message string
}

// Recorder implements viz.Viewer by appending records in call order. It
// tracks the most recent time cursor and stamps it on every record.
type Recorder struct {
	Layouts []viz.Layout
	Scalars []ScalarRecord
	Images  []ImageRecord
	Texts   []TextRecord

	cursor int64
}

// NewRecorder creates a Recorder ready for capture.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RegisterLayout implements viz.Viewer.
func (r *Recorder) RegisterLayout(layout viz.Layout) {
	r.Layouts = append(r.Layouts, layout)
}

// SetTimeCursor implements viz.Viewer. The sequence name is not stored;
// the session drives a single logical axis.
func (r *Recorder) SetTimeCursor(sequence string, value int64) {
	r.cursor = value
}

// AppendScalar implements viz.Viewer.
func (r *Recorder) AppendScalar(path string, value float64) {
	r.Scalars = append(r.Scalars, ScalarRecord{Path: path, Cursor: r.cursor, Value: value})
}

// AppendImage implements viz.Viewer.
func (r *Recorder) AppendImage(path string, img *viz.Image) {
	r.Images = append(r.Images, ImageRecord{
		Path:     path,
		Cursor:   r.cursor,
		Height:   img.Height,
		Width:    img.Width,
		Channels: img.Channels,
		Order:    img.Order,
	})
}

// AppendText implements viz.Viewer.
func (r *Recorder) AppendText(path string, message string) {
	r.Texts = append(r.Texts, TextRecord{Path: path, Cursor: r.cursor, Message: message})
}

// ScalarsAt returns the scalar records stamped with the given cursor, in
// capture order.
func (r *Recorder) ScalarsAt(cursor int64) []ScalarRecord {
	var out []ScalarRecord
	for _, rec := range r.Scalars {
		if rec.Cursor == cursor {
			out = append(out, rec)
		}
	}
	return out
}
