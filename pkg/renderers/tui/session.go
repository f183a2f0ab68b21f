package tui

import (
	"context"
	"errors"

	"github.com/goliatone/go-rankpredict/pkg/model"
)

// Controller is the part of a flow controller the session drives.
type Controller interface {
	Start(ctx context.Context) error
	Submit(ctx context.Context) (model.RequestState, error)
}

// Run starts ctrl, then loops: collect answers, submit, ask to go again.
// Option and submission failures are already on screen through the surface,
// so only prompt errors end the session.
func Run(ctx context.Context, ctrl Controller, s *Surface) error {
	_ = ctrl.Start(ctx)
	for {
		if err := s.Collect(ctx); err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}
		if _, err := ctrl.Submit(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		again, err := s.Again(ctx)
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}
		if !again {
			return s.Err()
		}
	}
}
