package rotator

import (
	"context"
	"errors"
)

// Publisher receives frames from the rotator.
//
// Publish is called with the rotator's transition lock held, so it must not
// call back into the rotator.
type Publisher interface {
	Publish(ctx context.Context, f Frame) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, f Frame) error

// Publish calls fn(ctx, f).
func (fn PublisherFunc) Publish(ctx context.Context, f Frame) error {
	return fn(ctx, f)
}

// MultiPublisher fans a frame out to every publisher in order.
// All publishers are called even if one fails; errors are joined.
type MultiPublisher []Publisher

// Publish implements Publisher.
func (m MultiPublisher) Publish(ctx context.Context, f Frame) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every frame.
var Discard Publisher = PublisherFunc(func(context.Context, Frame) error { return nil })
