package resource

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrNotFound = fmt.Errorf("%w: resource", commerr.ErrNotFound)
	ErrDecode   = errors.New("cannot decode resource value")
	ErrBadData  = errors.New("bad resource data")
)
