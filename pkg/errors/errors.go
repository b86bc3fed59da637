// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package errors

import (
	stdliberrors "errors"
	"fmt"
)

var (
	ErrUnsupported = stdliberrors.ErrUnsupported

	// ErrIndexOutOfRange is matched by every error returned from NewOutOfRange.
	ErrIndexOutOfRange = stdliberrors.New("index out of range")

	As     = stdliberrors.As
	Is     = stdliberrors.Is
	Join   = stdliberrors.Join
	New    = stdliberrors.New
	Unwrap = stdliberrors.Unwrap
)

// NewOutOfRange reports that index is not a valid logical index for a
// sequence holding length elements.
func NewOutOfRange(index, length int) error {
	return &OutOfRangeError{Index: index, Len: length}
}

// OutOfRange reports whether any error in err's tree is an out of range error.
func OutOfRange(err error) bool {
	var oerr *OutOfRangeError
	return As(err, &oerr)
}

type OutOfRangeError struct {
	Index int
	Len   int
}

func (o *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [%d, %d)", o.Index, -o.Len, o.Len)
}

func (o *OutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
