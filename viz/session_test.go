package viz_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teleoviz/teleoviz/viz"
	"github.com/teleoviz/teleoviz/viz/record"
)

func frame64() *viz.Tensor {
	return &viz.Tensor{Shape: []int{64, 64, 3}, Data: make([]float64, 64*64*3)}
}

func TestSession_Process_EndToEnd(t *testing.T) {
	// GIVEN a sample with two waist body keys and one color camera
	sample := viz.Sample{
		Idx: 0,
		States: viz.Mapping{
			{Key: "body", Val: viz.Mapping{
				{Key: "waist_l", Val: viz.Scalar(1.0)},
				{Key: "waist_r", Val: viz.Scalar(2.0)},
			}},
		},
		Colors: viz.Mapping{{Key: "cam0", Val: frame64()}},
	}

	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 30}, recorder)

	// WHEN processed
	s.Process(sample)

	// THEN one time-series view and one spatial view are registered
	require.Len(t, recorder.Layouts, 1)
	layout := recorder.Layouts[0]
	require.Len(t, layout.Views, 2)
	assert.Equal(t, viz.TimeSeriesView, layout.Views[0].Kind)
	assert.Equal(t, "states/body/waist", layout.Views[0].Origin)
	assert.Equal(t, viz.SpatialView, layout.Views[1].Kind)
	assert.Equal(t, "colors/cam0", layout.Views[1].Origin)
	assert.Equal(t, 2, layout.Columns)

	// AND both waist keys land under the shared category origin
	require.Len(t, recorder.Scalars, 2)
	assert.Equal(t, record.ScalarRecord{Path: "states/body/waist/waist_l", Cursor: 0, Value: 1.0}, recorder.Scalars[0])
	assert.Equal(t, record.ScalarRecord{Path: "states/body/waist/waist_r", Cursor: 0, Value: 2.0}, recorder.Scalars[1])

	// AND exactly one image is appended
	require.Len(t, recorder.Images, 1)
	assert.Equal(t, "colors/cam0", recorder.Images[0].Path)
	assert.Equal(t, viz.ChannelRGB, recorder.Images[0].Order)
}

func TestSession_Process_LayoutPlannedOnce(t *testing.T) {
	// GIVEN two samples with different channel sets
	first := viz.Sample{States: viz.Mapping{{Key: "left_arm", Val: viz.Scalar(1)}}}
	second := viz.Sample{
		States: viz.Mapping{{Key: "right_arm", Val: viz.Scalar(2)}},
		Colors: viz.Mapping{{Key: "cam0", Val: frame64()}},
	}

	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 30}, recorder)

	// WHEN both are processed
	s.ProcessAll([]viz.Sample{first, second})

	// THEN one layout is emitted, shaped by the first sample only
	require.Len(t, recorder.Layouts, 1)
	require.Len(t, recorder.Layouts[0].Views, 1)
	assert.Equal(t, "states/left_arm", recorder.Layouts[0].Views[0].Origin)
}

func TestSession_Process_WindowZeroDisablesLayout(t *testing.T) {
	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 0}, recorder)

	for i := 0; i < 5; i++ {
		s.Process(viz.Sample{
			Idx:    int64(i),
			States: viz.Mapping{{Key: "arm", Val: viz.Scalar(float64(i))}},
		})
	}

	// Scalars still flow; no layout is ever registered
	assert.Empty(t, recorder.Layouts)
	assert.Len(t, recorder.Scalars, 5)
}

func TestSession_Process_EmptyFirstSample_NoSecondPlanningAttempt(t *testing.T) {
	// GIVEN an empty first sample followed by a rich one
	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 30}, recorder)

	s.Process(viz.Sample{})
	s.Process(viz.Sample{States: viz.Mapping{{Key: "arm", Val: viz.Scalar(1)}}})

	// THEN no layout exists: planning is one-shot even when it yields nothing
	assert.Empty(t, recorder.Layouts)
}

func TestSession_Process_NonFiniteLeavesNeverReachViewer(t *testing.T) {
	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 30}, recorder)

	s.Process(viz.Sample{
		States: viz.Mapping{
			{Key: "arm", Val: viz.Sequence{
				viz.Scalar(math.NaN()),
				viz.Scalar(math.Inf(1)),
				viz.Scalar(math.Inf(-1)),
				viz.Scalar(0.5),
				nil,
			}},
		},
	})

	require.Len(t, recorder.Scalars, 1)
	assert.Equal(t, "states/arm/3", recorder.Scalars[0].Path)
	assert.Equal(t, 0.5, recorder.Scalars[0].Value)
}

func TestSession_Process_BodyCategoryPathsIncludeRawKey(t *testing.T) {
	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{Prefix: "online/", WindowSize: 30}, recorder)

	s.Process(viz.Sample{
		Actions: viz.Mapping{
			{Key: "body", Val: viz.Mapping{
				{Key: "move_x", Val: viz.Scalar(0.1)},
				{Key: "gripper", Val: viz.Sequence{viz.Scalar(0.2), viz.Scalar(0.3)}},
			}},
			{Key: "head", Val: viz.Scalar(0.4)},
		},
	})

	var paths []string
	for _, rec := range recorder.Scalars {
		paths = append(paths, rec.Path)
	}
	want := []string{
		"online/actions/body/move/move_x",
		"online/actions/body/other/gripper/0",
		"online/actions/body/other/gripper/1",
		"online/actions/head",
	}
	assert.Equal(t, want, paths)
}

func TestSession_Process_OutOfOrderIndices_CursorFollowsEachSample(t *testing.T) {
	// GIVEN samples replayed with gaps and out of order
	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 30}, recorder)

	for _, idx := range []int64{4, 2, 9} {
		s.Process(viz.Sample{
			Idx:    idx,
			States: viz.Mapping{{Key: "arm", Val: viz.Scalar(float64(idx))}},
		})
	}

	// THEN each write lands at its own sample's cursor
	for i, idx := range []int64{4, 2, 9} {
		assert.Equal(t, idx, recorder.Scalars[i].Cursor)
	}
	assert.Len(t, recorder.ScalarsAt(2), 1)
}

func TestSession_Process_TactilesAndAudiosAreInert(t *testing.T) {
	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 30}, recorder)

	s.Process(viz.Sample{
		Tactiles: viz.Opaque{Raw: []byte{1, 2, 3}},
		Audios:   viz.Opaque{Raw: "pcm"},
	})

	assert.Empty(t, recorder.Scalars)
	assert.Empty(t, recorder.Images)
	assert.Empty(t, recorder.Texts)
}

func TestSession_Stats_CountsAppendsAndSkips(t *testing.T) {
	recorder := record.NewRecorder()
	s := viz.NewSession(viz.Config{WindowSize: 30}, recorder)

	sample := viz.Sample{
		States: viz.Mapping{{Key: "arm", Val: viz.Sequence{viz.Scalar(1), viz.Scalar(2)}}},
		Colors: viz.Mapping{
			{Key: "cam0", Val: frame64()},
			{Key: "cam1", Val: viz.Opaque{Raw: "bad"}},
		},
	}
	s.Process(sample)
	s.Process(sample)
	s.Close()
	s.Close() // idempotent

	st := s.Stats()
	assert.Equal(t, 2, st.Samples)
	assert.Equal(t, 4, st.ScalarsAppended)
	assert.Equal(t, 2, st.ImagesAppended)
	assert.Equal(t, 2, st.ImagesSkipped)
	assert.Equal(t, 1, st.WarnedOrigins)
}

func TestSession_ID_IsUniquePerSession(t *testing.T) {
	recorder := record.NewRecorder()
	a := viz.NewSession(viz.Config{}, recorder)
	b := viz.NewSession(viz.Config{}, recorder)
	assert.NotEqual(t, a.ID(), b.ID())
}
