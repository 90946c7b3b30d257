package viz

// Viewer is the narrow capability surface the session logs through. The
// rendering engine behind it is not part of this module; implementations
// range from a real visualization backend to the in-memory recorder in
// viz/record used for replay and tests.
type Viewer interface {
	// RegisterLayout installs the panel layout. Called at most once per
	// session, before any data for the first sample is appended.
	RegisterLayout(layout Layout)
	// SetTimeCursor moves the named time sequence to the given value.
	// Subsequent appends land at this cursor.
	SetTimeCursor(sequence string, value int64)
	// AppendScalar appends one scalar at the current cursor.
	AppendScalar(path string, value float64)
	// AppendImage appends one normalized image frame at the current cursor.
	AppendImage(path string, img *Image)
	// AppendText appends a diagnostic text entry at the current cursor.
	AppendText(path string, message string)
}
