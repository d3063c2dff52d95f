package repair

import (
	"errors"

	"github.com/ezrec/handheld/translate"
)

var f = translate.From

var (
	ErrNoRepairFound   = errors.New(f("no repair found"))
	ErrStrategyUnknown = errors.New(f("strategy unknown"))
)

// ErrRepairAmbiguous lists every IP whose flip terminates the program.
type ErrRepairAmbiguous struct {
	Ips []int
}

func (err *ErrRepairAmbiguous) Error() string {
	return f("%d repairs possible at %v", len(err.Ips), err.Ips)
}
