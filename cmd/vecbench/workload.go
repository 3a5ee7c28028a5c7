package main

import (
	"math/rand"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pavanmanishd/vector"
)

// runWorkload applies ops steps of the named workload to v. Capacity
// changes are logged at debug level.
func runWorkload[A vector.Allocator[int64]](v *vector.Vector[int64, A], name string, ops int, rng *rand.Rand, logger *zap.Logger) error {
	lastCap := v.Cap()
	observe := func() {
		if c := v.Cap(); c != lastCap {
			logger.Debug("reallocated",
				zap.Int("len", v.Len()),
				zap.Int("from", lastCap),
				zap.Int("to", c))
			lastCap = c
		}
	}

	if name == "erase" {
		if err := v.ResizeFill(ops, 1); err != nil {
			return errors.Wrap(err, "erase setup")
		}
		observe()
		for !v.Empty() {
			v.Erase(v.Begin().Add(v.Len() / 2))
		}
		return nil
	}

	for i := 0; i < ops; i++ {
		var err error
		x := int64(i)
		switch name {
		case "push":
			err = v.PushBack(x)
		case "insert-front":
			_, err = v.Insert(v.Begin(), x)
		case "insert-mid":
			_, err = v.Insert(v.Begin().Add(v.Len()/2), x)
		case "mixed":
			err = mixedStep(v, rng, x)
		default:
			return errors.Newf("unknown workload %q", name)
		}
		if err != nil {
			return errors.Wrapf(err, "%s step %d", name, i)
		}
		observe()
	}
	return nil
}

// mixedStep pushes half of the time and otherwise inserts, erases or pops
// at random positions.
func mixedStep[A vector.Allocator[int64]](v *vector.Vector[int64, A], rng *rand.Rand, x int64) error {
	switch r := rng.Intn(10); {
	case r < 5 || v.Empty():
		return v.PushBack(x)
	case r < 7:
		_, err := v.Insert(v.Begin().Add(rng.Intn(v.Len()+1)), x)
		return err
	case r < 9:
		v.Erase(v.Begin().Add(rng.Intn(v.Len())))
	default:
		v.PopBack()
	}
	return nil
}
