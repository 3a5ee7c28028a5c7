package vector

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfRange is returned by bounds-checked access when the index is
	// not less than Len.
	ErrOutOfRange = errors.New("vector: index out of range")
	// ErrLength is returned when a requested size or capacity exceeds
	// MaxSize. Nothing is allocated and the vector is left unchanged.
	ErrLength = errors.New("vector: length error")
	// ErrBadAlloc is returned when an allocator cannot provide storage.
	ErrBadAlloc = errors.New("vector: bad allocation")
)

func outOfRange(i, size int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, size %d", i, size)
}

func lengthError(n, maxSize int) error {
	return errors.Wrapf(ErrLength, "requested %d, max size %d", n, maxSize)
}
