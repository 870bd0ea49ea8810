package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avtransform/attribute"
	"github.com/xaionaro-go/avtransform/effect/flip"
	"github.com/xaionaro-go/avtransform/effect/textoverlay"
	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/pool"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
	"github.com/xaionaro-go/observability"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags] <input.raw|-> <output.raw|->\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	formatFlag := pflag.String("format", "NV12", "pixel format: YUY2, UYVY, NV12, I420 or RGBA")
	width := pflag.Int("width", 320, "frame width")
	height := pflag.Int("height", 240, "frame height")
	fpsFlag := pflag.String("fps", "30", "frame rate, e.g. '25', '30000/1001' or '~29.97'")
	frames := pflag.Int64("frames", 300, "amount of frames to generate if the input is '-'")
	effectName := pflag.String("effect", "passthrough", fmt.Sprintf("effect, one of %v", effectNames()))
	text := pflag.String("text", "pts: "+textoverlay.PlaceholderPTS, "text for the textoverlay effect")
	flipModeFlag := pflag.String("flip-mode", "horizontal", "initial mode of the flip effect: none, horizontal, vertical or rotate180")
	flipEvery := pflag.Duration("flip-every", 0, "cycle the flip mode with this period (flip effect only)")
	blurRadius := pflag.Float64("blur-radius", 2, "radius of the blur effect")
	realtime := pflag.Bool("realtime", false, "pace the input according to the timestamps")
	viaLibav := pflag.Bool("via-libav", false, "pass the output frames through libav frames before writing them")
	statsEvery := pflag.Duration("stats-every", time.Second, "print statistics with this period (0 to disable)")
	pflag.Parse()
	if len(pflag.Args()) != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	subtype, err := types.SubtypeFromString(*formatFlag)
	if err != nil {
		l.Fatal(err)
	}
	fps, err := types.RationalFromString(*fpsFlag)
	if err != nil {
		l.Fatal(err)
	}
	flipMode, err := flip.FlipModeFromString(*flipModeFlag)
	if err != nil {
		l.Fatal(err)
	}
	inputType, err := types.NewVideoMediaType(subtype, *width, *height, *fps)
	if err != nil {
		l.Fatal(err)
	}

	s, err := newEffectStage(ctx, *effectName, effectParams{
		Text:       *text,
		FlipMode:   flipMode,
		BlurRadius: *blurRadius,
	})
	if err != nil {
		l.Fatal(err)
	}
	defer func() {
		if err := s.Close(ctx); err != nil {
			l.Error(err)
		}
	}()

	outputType, err := negotiate(ctx, s, inputType)
	if err != nil {
		l.Fatal(err)
	}
	l.Debugf("negotiated %s -> %s", inputType, outputType)

	inputLayout, err := frame.LayoutFromMediaType(inputType)
	if err != nil {
		l.Fatal(err)
	}
	outputLayout, err := frame.LayoutFromMediaType(outputType)
	if err != nil {
		l.Fatal(err)
	}

	bufPool := pool.NewBufferPool()
	var source frame.Source
	switch inputPath := pflag.Arg(0); inputPath {
	case "-":
		source = &frame.PatternGenerator{
			Layout:        inputLayout,
			FrameDuration: fps.FrameDuration(),
			FrameCount:    *frames,
			BufferPool:    bufPool,
		}
	default:
		f, err := os.Open(inputPath)
		if err != nil {
			l.Fatal(err)
		}
		defer f.Close()
		source = frame.NewRawReader(f, inputLayout, fps.FrameDuration(), bufPool)
	}

	var outputFile io.Writer = os.Stdout
	if outputPath := pflag.Arg(1); outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			l.Fatal(err)
		}
		defer f.Close()
		outputFile = f
	}
	writer := frame.NewRawWriter(outputFile, outputLayout, bufPool)
	var output sink = writer
	if *viaLibav {
		output, err = newLibavSink(ctx, outputType, writer, bufPool)
		if err != nil {
			l.Fatal(err)
		}
	}

	if *flipEvery > 0 {
		if *effectName != "flip" {
			l.Warnf("--flip-every has no effect on '%s'", *effectName)
		}
		observability.Go(ctx, func(ctx context.Context) {
			controlFlipMode(ctx, s.GetAttributes(ctx), *flipEvery)
		})
	}
	if *statsEvery > 0 {
		observability.Go(ctx, func(ctx context.Context) {
			printStats(ctx, s, *statsEvery)
		})
	}

	startTS := time.Now()
	if err := pump(ctx, s, source, output, *realtime); err != nil {
		l.Fatal(err)
	}
	if err := writer.Flush(); err != nil {
		l.Fatal(err)
	}

	stats := s.Stats()
	elapsed := max(time.Since(startTS), time.Millisecond)
	fmt.Fprintf(os.Stderr, "%s: %d frames in %v (%s/s), allocated %d buffers\n",
		s, stats.Produced.Count, elapsed.Round(time.Millisecond),
		humanize.Bytes(uint64(float64(stats.Produced.Bytes)/elapsed.Seconds())),
		bufPool.Allocated.Load(),
	)
}

// controlFlipMode acts as an external controller: it cycles the flip mode
// through the attribute store while the stage is streaming.
func controlFlipMode(
	ctx context.Context,
	attrs *attribute.Store,
	period time.Duration,
) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		mode, _ := attrs.GetInt(ctx, attribute.KeyFlipMode)
		next := (flip.FlipMode(mode) + 1) % (flip.FlipModeRotate180 + 1)
		logger.Infof(ctx, "switching the flip mode to %s", next)
		attrs.SetInt(ctx, attribute.KeyFlipMode, int64(next))
	}
}

func printStats(
	ctx context.Context,
	s stage.Abstract,
	period time.Duration,
) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		statsJSON, err := json.Marshal(s.Stats())
		if err != nil {
			logger.Error(ctx, err)
			return
		}
		fmt.Fprintf(os.Stderr, "%s (%s): %s\n", s, s.State(ctx), statsJSON)
	}
}
