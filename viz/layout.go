package viz

import "sort"

// ViewKind distinguishes the two panel flavors a layout can hold.
type ViewKind string

const (
	// TimeSeriesView plots scalar channels under one origin over time.
	TimeSeriesView ViewKind = "timeseries"
	// SpatialView shows image frames logged at one origin.
	SpatialView ViewKind = "spatial"
)

// View is one panel of the session layout. Window is the sliding range
// width: the panel tracks the most recent Window samples relative to the
// live time cursor.
type View struct {
	Kind   ViewKind
	Origin string
	Window int
}

// Layout is the frozen panel arrangement for a session: every view plus a
// grid of at most two columns. It is derived from a single sample and
// never mutated afterwards.
type Layout struct {
	Views   []View
	Columns int
}

// PlanLayout derives the complete layout from one sample's shape. Channels
// absent from this sample are never retrofitted later, which is the
// accepted cost of planning from a single observation. The second return
// is false when the sample yields no views at all; no layout should be
// registered in that case.
func PlanLayout(prefix string, window int, s Sample) (Layout, bool) {
	var views []View
	for _, origin := range timeSeriesOrigins(prefix, s) {
		views = append(views, View{Kind: TimeSeriesView, Origin: origin, Window: window})
	}
	for _, origin := range spatialOrigins(prefix, s) {
		views = append(views, View{Kind: SpatialView, Origin: origin, Window: window})
	}
	if len(views) == 0 {
		return Layout{}, false
	}
	return Layout{Views: views, Columns: min(2, len(views))}, true
}

// timeSeriesOrigins collects one origin per non-body state/action part and
// one per category present under body. Returned sorted so the panel order
// is stable across runs.
func timeSeriesOrigins(prefix string, s Sample) []string {
	seen := map[string]bool{}
	collect := func(block string, data Mapping) {
		for _, e := range data {
			if e.Key == bodyKey {
				body, ok := e.Val.(Mapping)
				if !ok {
					continue
				}
				for _, be := range body {
					seen[prefix+block+"/body/"+string(Categorize(be.Key))] = true
				}
				continue
			}
			seen[prefix+block+"/"+e.Key] = true
		}
	}
	collect("states", s.States)
	collect("actions", s.Actions)

	origins := make([]string, 0, len(seen))
	for origin := range seen {
		origins = append(origins, origin)
	}
	sort.Strings(origins)
	return origins
}

// spatialOrigins lists color origins then depth origins, each in the
// sample's own channel order.
func spatialOrigins(prefix string, s Sample) []string {
	var origins []string
	for _, e := range s.Colors {
		origins = append(origins, prefix+"colors/"+e.Key)
	}
	for _, e := range s.Depths {
		origins = append(origins, prefix+"depths/"+e.Key)
	}
	return origins
}
