package viz

// Sample is one timestep of a teleoperation episode. Idx is the logical
// time the record belongs to; it need not be strictly increasing, and
// replaying out of order is allowed.
type Sample struct {
	Idx      int64
	Colors   Mapping // camera name -> image payload (nil entries = no frame)
	Depths   Mapping // same shape as Colors
	States   Mapping // part name -> numeric value or nested structure
	Actions  Mapping // same shape as States
	Tactiles Value   // opaque, carried but not processed
	Audios   Value   // opaque, carried but not processed
}

// bodyKey is the reserved sub-mapping of States/Actions whose entries are
// grouped by semantic category instead of raw key.
const bodyKey = "body"
