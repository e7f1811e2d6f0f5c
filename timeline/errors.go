package timeline

import "errors"

var ErrUnsortable = errors.New("segments cannot be sorted: two unequal values share an interval")
