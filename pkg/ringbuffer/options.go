// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package ringbuffer

import "github.com/go-logr/logr"

// Option configures a RingBuffer at construction time.
type Option[T any] func(*options[T])

type options[T any] struct {
	logger logr.Logger
	onDrop func(T)
}

// WithLogger sets the logger used to report overwritten and truncated elements.
// Defaults to logr.Discard().
func WithLogger[T any](logger logr.Logger) Option[T] {
	return func(o *options[T]) {
		o.logger = logger
	}
}

// WithDropCallback sets a function that is called once for every element a
// Push discards, oldest first. Explicit removals (Pop, Shift, Clear, Resize)
// do not trigger it.
func WithDropCallback[T any](fn func(T)) Option[T] {
	return func(o *options[T]) {
		o.onDrop = fn
	}
}

func applyOptions[T any](opts []Option[T]) options[T] {
	o := options[T]{
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.logger = o.logger.WithName("ringbuffer")
	return o
}
