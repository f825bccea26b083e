package notifier

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"
	"errors"
)

// Fanout forwards to every observer, in order. Every observer is called even
// when an earlier one fails; the errors are joined
type Fanout struct {
	observers []port.Observer
}

var _ port.Observer = (*Fanout)(nil)

// NewFanout creates a Fanout over the non-nil observers
func NewFanout(observers ...port.Observer) *Fanout {
	f := &Fanout{}
	for _, o := range observers {
		if o != nil {
			f.observers = append(f.observers, o)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, event domain.SessionEvent) error {
	var errs []error
	for _, o := range f.observers {
		if err := o.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Notify(ctx context.Context, notification domain.Notification) error {
	var errs []error
	for _, o := range f.observers {
		if err := o.Notify(ctx, notification); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
