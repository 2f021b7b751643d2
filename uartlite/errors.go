// uartlite/errors.go

package uartlite

import (
	"errors"
	"strconv"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock reports that an operation cannot make progress now: the TX
// FIFO is full, the RX FIFO is empty, or an async transfer is still pending.
// It is a control flow signal, not a failure; retry after a wake-up or backoff.
//
// This is an alias for [iox.ErrWouldBlock].
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

var (
	// ErrInvalidSlotIndex matches any *InvalidSlotIndexError.
	ErrInvalidSlotIndex = errors.New("invalid waker slot index")

	// ErrTransferSuperseded is returned by Poll on a future whose slot has
	// since been handed to a newer transfer.
	ErrTransferSuperseded = errors.New("transfer superseded by a newer one on the same slot")

	// ErrTransferCancelled is returned by Poll on a cancelled future.
	ErrTransferCancelled = errors.New("transfer cancelled")
)

// InvalidSlotIndexError is returned when a waker slot index is >= NumWakers.
type InvalidSlotIndexError struct {
	Index int
}

func (e *InvalidSlotIndexError) Error() string {
	return "invalid waker slot index: " + strconv.Itoa(e.Index)
}

func (e *InvalidSlotIndexError) Is(target error) bool {
	return target == ErrInvalidSlotIndex
}
