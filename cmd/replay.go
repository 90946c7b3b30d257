package cmd

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/teleoviz/teleoviz/viz"
	"github.com/teleoviz/teleoviz/viz/record"
)

var (
	// CLI flags for the replay session
	prefix      string  // Path namespace prepended to every emitted channel
	windowSize  int     // Sliding window width in samples (<= 0 disables layout planning)
	memoryLimit string  // Advisory viewer memory cap, e.g. "50MB"
	rateHz      float64 // Playback pacing in samples per second (0 = as fast as possible)
	steps       int     // Number of synthetic samples to generate
	logLevel    string  // Log verbosity level
	configPath  string  // Optional YAML session config overriding the flags
)

// replayCmd generates a synthetic teleoperation episode and replays it
// through a recording session, then logs the session counters.
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a synthetic episode through a visualization session",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := SessionConfig{
			Prefix:      prefix,
			WindowSize:  windowSize,
			MemoryLimit: memoryLimit,
			RateHz:      rateHz,
			Steps:       steps,
		}
		if configPath != "" {
			cfg, err = LoadSessionConfig(configPath, cfg)
			if err != nil {
				logrus.Fatalf("unable to read session config: %v", err)
			}
		}

		source := viz.NewMemorySource()
		source.Add("synthetic", SyntheticEpisode(cfg.Steps)...)

		recorder := record.NewRecorder()
		session := viz.NewSession(viz.Config{
			Prefix:      cfg.Prefix,
			WindowSize:  cfg.WindowSize,
			MemoryLimit: cfg.MemoryLimit,
		}, recorder)

		var pause time.Duration
		if cfg.RateHz > 0 {
			pause = time.Duration(float64(time.Second) / cfg.RateHz)
		}

		startTime := time.Now()
		for ordinal := 0; ordinal < source.Len("synthetic"); ordinal++ {
			sample, err := source.Sample("synthetic", ordinal)
			if err != nil {
				logrus.Fatalf("unable to read sample %d: %v", ordinal, err)
			}
			session.Process(sample)
			if pause > 0 {
				time.Sleep(pause)
			}
		}
		session.Close()

		logrus.Infof("replayed %d samples in %s (%d scalar records, %d image records)",
			source.Len("synthetic"), time.Since(startTime).Round(time.Millisecond),
			len(recorder.Scalars), len(recorder.Images))
	},
}

// SyntheticEpisode builds a small episode exercising every channel kind:
// body joints covering each category, a nested arm state, and one color
// and one depth camera.
func SyntheticEpisode(steps int) []viz.Sample {
	samples := make([]viz.Sample, 0, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / 10.0
		samples = append(samples, viz.Sample{
			Idx: int64(i),
			States: viz.Mapping{
				{Key: "body", Val: viz.Mapping{
					{Key: "waist_yaw", Val: viz.Scalar(math.Sin(t))},
					{Key: "move_x", Val: viz.Scalar(math.Cos(t))},
					{Key: "lift_height", Val: viz.Scalar(0.5 + 0.1*math.Sin(t/2))},
					{Key: "gripper", Val: viz.Scalar(float64(i % 2))},
				}},
				{Key: "left_arm", Val: viz.Sequence{
					viz.Scalar(math.Sin(t)), viz.Scalar(math.Cos(t)), viz.Scalar(t),
				}},
			},
			Actions: viz.Mapping{
				{Key: "left_arm", Val: viz.Sequence{
					viz.Scalar(math.Sin(t + 0.1)), viz.Scalar(math.Cos(t + 0.1)), viz.Scalar(t + 0.1),
				}},
			},
			Colors: viz.Mapping{{Key: "cam_head", Val: gradientFrame(48, 64, 3, i)}},
			Depths: viz.Mapping{{Key: "cam_head", Val: gradientFrame(48, 64, 1, i)}},
		})
	}
	return samples
}

// gradientFrame builds a height x width x channels test pattern that
// shifts with the step index.
func gradientFrame(height, width, channels, step int) *viz.Tensor {
	data := make([]float64, height*width*channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < channels; c++ {
				data[(y*width+x)*channels+c] = float64((x + y + step*4 + c*85) % 256)
			}
		}
	}
	shape := []int{height, width, channels}
	if channels == 1 {
		shape = []int{height, width}
		trimmed := make([]float64, height*width)
		copy(trimmed, data[:height*width])
		data = trimmed
	}
	return &viz.Tensor{Shape: shape, Data: data}
}

// init sets up CLI flags and subcommands
func init() {
	replayCmd.Flags().StringVar(&prefix, "prefix", "offline/", "Path namespace for emitted channels")
	replayCmd.Flags().IntVar(&windowSize, "window", 30, "Sliding window width in samples (<= 0 disables layout planning)")
	replayCmd.Flags().StringVar(&memoryLimit, "memory-limit", "", "Advisory viewer memory cap (e.g. 50MB)")
	replayCmd.Flags().Float64Var(&rateHz, "rate-hz", 0, "Playback pacing in samples per second (0 = unpaced)")
	replayCmd.Flags().IntVar(&steps, "steps", 120, "Number of synthetic samples to replay")
	replayCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	replayCmd.Flags().StringVar(&configPath, "config", "", "Optional YAML session config file")

	// Attach `replay` as a subcommand to `root`
	rootCmd.AddCommand(replayCmd)
}
