// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package ringbuffer

import (
	"fmt"
	"iter"
	"slices"

	"github.com/antimetal/ringbuffer/pkg/errors"
)

var ErrInvalidCapacity = errors.New("capacity must not be negative")

// RingBuffer is a generic, thread-unsafe circular buffer implementation that
// overwrites oldest elements when capacity is reached.
//
// This implementation is useful for scenarios where you want to keep only
// the most recent N items, such as:
//   - Recent log entries
//   - Latest measurements or samples
//   - Rolling window of events
//
// Elements are addressed by logical index, where 0 is the oldest element and
// Len()-1 the newest. Negative indices count back from the newest element, so
// -1 is the newest and -Len() the oldest.
//
// Note: This implementation is NOT thread-safe. If concurrent access is needed,
// synchronization must be handled externally.
type RingBuffer[T any] struct {
	data []T
	head int // slot of the oldest element
	size int // current number of elements
	opts options[T]
}

// New creates a new, empty ring buffer with the given capacity.
// A zero capacity buffer is valid and never holds any element.
func New[T any](capacity int, opts ...Option[T]) (*RingBuffer[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	return &RingBuffer[T]{
		data: make([]T, capacity),
		opts: applyOptions(opts),
	}, nil
}

// From creates a full ring buffer whose capacity is len(items).
// items is copied.
func From[T any](items []T, opts ...Option[T]) *RingBuffer[T] {
	data := make([]T, len(items))
	copy(data, items)
	return &RingBuffer[T]{
		data: data,
		size: len(items),
		opts: applyOptions(opts),
	}
}

// Push appends items after the newest element, overwriting the oldest ones
// if there is not enough free space. It returns r to allow chaining.
func (r *RingBuffer[T]) Push(items ...T) *RingBuffer[T] {
	capacity := len(r.data)
	n := len(items)
	if n == 0 || capacity == 0 {
		return r
	}

	overlap := max(r.size+n-capacity, 0)
	if overlap > 0 {
		r.drop(items, overlap)
	}

	// Only the trailing capacity items survive the batch; earlier ones
	// would land on the same slots and be overwritten.
	for i := max(n-capacity, 0); i < n; i++ {
		r.data[(r.head+r.size+i)%capacity] = items[i]
	}
	r.head = (r.head + overlap) % capacity
	r.size = min(r.size+n, capacity)
	return r
}

// drop reports the overlap elements a pending push of items discards: the
// oldest buffered elements first, then leading items of the batch itself.
func (r *RingBuffer[T]) drop(items []T, overlap int) {
	r.opts.logger.V(1).Info("overwriting oldest elements",
		"dropped", overlap, "capacity", len(r.data))

	if r.opts.onDrop == nil {
		return
	}
	old := min(overlap, r.size)
	for i := range old {
		r.opts.onDrop(r.data[(r.head+i)%len(r.data)])
	}
	for _, item := range items[:overlap-old] {
		r.opts.onDrop(item)
	}
}

// Pop removes and returns the newest element.
// It returns false if the buffer is empty.
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	i := (r.head + r.size - 1) % len(r.data)
	item := r.data[i]
	r.data[i] = zero
	r.size--
	return item, true
}

// Shift removes and returns the oldest element.
// It returns false if the buffer is empty.
func (r *RingBuffer[T]) Shift() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	item := r.data[r.head]
	r.data[r.head] = zero
	r.head = (r.head + 1) % len(r.data)
	r.size--
	return item, true
}

// Get returns the element at the logical index.
// It returns false if index is outside [-Len(), Len()).
func (r *RingBuffer[T]) Get(index int) (T, bool) {
	slot, ok := r.slot(index)
	if !ok {
		var zero T
		return zero, false
	}
	return r.data[slot], true
}

// Peek returns the oldest element without removing it.
func (r *RingBuffer[T]) Peek() (T, bool) {
	return r.Get(0)
}

// PeekLast returns the newest element without removing it.
func (r *RingBuffer[T]) PeekLast() (T, bool) {
	return r.Get(-1)
}

// Set replaces the element at the logical index. Unlike Get, an index
// outside [-Len(), Len()) is an error, see errors.OutOfRange.
func (r *RingBuffer[T]) Set(index int, value T) error {
	slot, ok := r.slot(index)
	if !ok {
		return errors.NewOutOfRange(index, r.size)
	}
	r.data[slot] = value
	return nil
}

func (r *RingBuffer[T]) slot(index int) (int, bool) {
	if index < 0 {
		index += r.size
	}
	if index < 0 || index >= r.size {
		return 0, false
	}
	return (r.head + index) % len(r.data), true
}

// Resize replaces the backing store with one of the given capacity.
// Elements are kept oldest first; when shrinking below Len() the newest
// elements are dropped.
func (r *RingBuffer[T]) Resize(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}

	data := make([]T, capacity)
	n := r.copyTo(data)
	if dropped := r.size - n; dropped > 0 {
		r.opts.logger.V(1).Info("resize truncated elements",
			"from", len(r.data), "to", capacity, "dropped", dropped)
	}

	r.data = data
	r.head = 0
	r.size = n
	return nil
}

// copyTo copies up to len(dst) elements into dst, oldest first, and returns
// the number of elements copied.
func (r *RingBuffer[T]) copyTo(dst []T) int {
	n := min(len(dst), r.size)
	if n == 0 {
		return 0
	}
	// Copy from head towards the end of the store, then wrap to the beginning
	first := copy(dst[:n], r.data[r.head:])
	copy(dst[first:n], r.data[:n-first])
	return n
}

// Clone returns an independent copy of the buffer. Elements are copied
// shallowly; the clone shares the options of r.
func (r *RingBuffer[T]) Clone() *RingBuffer[T] {
	return &RingBuffer[T]{
		data: slices.Clone(r.data),
		head: r.head,
		size: r.size,
		opts: r.opts,
	}
}

// All returns an iterator over the logical indices and elements, oldest to
// newest. The buffer must not be modified while iterating.
func (r *RingBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < r.size; i++ {
			if !yield(i, r.data[(r.head+i)%len(r.data)]) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements, oldest to newest.
func (r *RingBuffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range r.All() {
			if !yield(item) {
				return
			}
		}
	}
}

// GetAll returns all elements in chronological order (oldest to newest)
func (r *RingBuffer[T]) GetAll() []T {
	result := make([]T, r.size)
	r.copyTo(result)
	return result
}

// Len returns the current number of elements in the buffer
func (r *RingBuffer[T]) Len() int {
	return r.size
}

// Cap returns the capacity of the buffer
func (r *RingBuffer[T]) Cap() int {
	return len(r.data)
}

func (r *RingBuffer[T]) IsEmpty() bool {
	return r.size == 0
}

func (r *RingBuffer[T]) IsFull() bool {
	return r.size == len(r.data)
}

// Clear removes all elements from the buffer
func (r *RingBuffer[T]) Clear() {
	r.size = 0
	r.head = 0
	// Clear the underlying data to help GC
	clear(r.data)
}
