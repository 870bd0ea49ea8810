package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/xaionaro-go/avtransform/frame"
	"github.com/xaionaro-go/avtransform/logger"
	"github.com/xaionaro-go/avtransform/stage"
	"github.com/xaionaro-go/avtransform/types"
)

// negotiate offers inputType to the stage and commits the output type the
// stage derives from it.
func negotiate(
	ctx context.Context,
	s stage.Abstract,
	inputType *types.MediaType,
) (_ret *types.MediaType, _err error) {
	logger.Debugf(ctx, "negotiate(ctx, %s, %s)", s, inputType)
	defer func() { logger.Debugf(ctx, "/negotiate(ctx, %s, %s): %s %v", s, inputType, _ret, _err) }()

	var supported []types.Subtype
	for idx := 0; ; idx++ {
		candidate, err := s.EnumerateCandidateInputType(ctx, stage.StreamIDDefault, idx)
		if errors.Is(err, stage.ErrNoMoreTypes{}) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to enumerate the input types: %w", err)
		}
		supported = append(supported, candidate.Subtype)
	}
	if len(supported) > 0 {
		logger.Debugf(ctx, "%s prefers %v", s, supported)
	}

	if err := s.SetInputType(ctx, stage.StreamIDDefault, inputType, true); err != nil {
		return nil, fmt.Errorf("%s does not accept %s (supported subtypes: %v): %w", s, inputType.Subtype, supported, err)
	}
	if err := s.SetInputType(ctx, stage.StreamIDDefault, inputType, false); err != nil {
		return nil, fmt.Errorf("unable to set the input type: %w", err)
	}

	outputType, err := s.EnumerateCandidateOutputType(ctx, stage.StreamIDDefault, 0)
	if err != nil {
		return nil, fmt.Errorf("unable to get the output type: %w", err)
	}
	if err := s.SetOutputType(ctx, stage.StreamIDDefault, outputType, false); err != nil {
		return nil, fmt.Errorf("unable to set the output type %s: %w", outputType, err)
	}
	return outputType, nil
}

type sink interface {
	WriteSample(ctx context.Context, s *types.Sample) error
}

// pump drives the stage: every sample read from the source is submitted
// and the produced output is written to the sink.
func pump(
	ctx context.Context,
	s stage.Abstract,
	source frame.Source,
	output sink,
	realtime bool,
) (_err error) {
	logger.Debugf(ctx, "pump")
	defer func() { logger.Debugf(ctx, "/pump: %v", _err) }()

	for _, msg := range []types.MessageType{types.MessageTypeBeginStreaming, types.MessageTypeStartOfStream} {
		if _, err := s.Dispatch(ctx, msg); err != nil {
			return fmt.Errorf("unable to dispatch %s: %w", msg, err)
		}
	}

	startTS := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sample, err := source.ReadSample(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("unable to read a sample: %w", err)
		}
		if realtime {
			if wait := time.Until(startTS.Add(sample.PTS)); wait > 0 {
				time.Sleep(wait)
			}
		}

		if err := s.SubmitInput(ctx, stage.StreamIDDefault, sample); err != nil {
			return fmt.Errorf("unable to submit %s: %w", sample, err)
		}
		if err := produce(ctx, s, output); err != nil {
			return err
		}
	}

	if _, err := s.Dispatch(ctx, types.MessageTypeEndOfStream); err != nil {
		return fmt.Errorf("unable to dispatch end-of-stream: %w", err)
	}
	if _, err := s.Dispatch(ctx, types.MessageTypeDrain); err != nil {
		return fmt.Errorf("unable to dispatch drain: %w", err)
	}
	if err := produce(ctx, s, output); err != nil {
		return err
	}
	if _, err := s.Dispatch(ctx, types.MessageTypeEndStreaming); err != nil {
		return fmt.Errorf("unable to dispatch end-of-streaming: %w", err)
	}
	return nil
}

func produce(
	ctx context.Context,
	s stage.Abstract,
	output sink,
) error {
	if s.GetOutputReadiness(ctx) != types.OutputStatusReady {
		return nil
	}
	result, err := s.ProduceOutput(ctx)
	switch {
	case errors.Is(err, stage.ErrNeedMoreInput{}):
		return nil
	case err != nil:
		return fmt.Errorf("unable to produce the output: %w", err)
	}
	if err := output.WriteSample(ctx, result); err != nil {
		return fmt.Errorf("unable to write %s: %w", result, err)
	}
	return nil
}
