package profile

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	// ErrMultipleValues means an upstream timeline broke the coalescing contract.
	ErrMultipleValues = errors.New("multiple segments at one instant")

	ErrNonLinear            = fmt.Errorf("%w: result would not be linear", commerr.ErrInvalidArgument)
	ErrNotPiecewiseConstant = fmt.Errorf("%w: profile is not piecewise constant", commerr.ErrInvalidArgument)
	ErrGap                  = fmt.Errorf("%w: profile has a gap", commerr.ErrInvalidArgument)
	ErrSplit                = fmt.Errorf("%w: cannot split span", commerr.ErrInvalidArgument)
	ErrInvalidUnit          = fmt.Errorf("%w: unit must be positive", commerr.ErrInvalidArgument)
	ErrDivisionByZero       = fmt.Errorf("%w: division by zero", commerr.ErrInvalidArgument)
	ErrInvalidRoot          = fmt.Errorf("%w: root degree must be positive", commerr.ErrInvalidArgument)
)
