package resource

import (
	"fmt"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/spf13/cast"
)

func DecodeBool(raw any, _ interval.Duration) (bool, error) {
	v, err := cast.ToBoolE(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return v, nil
}

func DecodeFloat64(raw any, _ interval.Duration) (float64, error) {
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return v, nil
}

func DecodeInt64(raw any, _ interval.Duration) (int64, error) {
	v, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return v, nil
}

func DecodeString(raw any, _ interval.Duration) (string, error) {
	v, err := cast.ToStringE(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return v, nil
}

// DecodeFields reads the named numeric fields of a map-shaped raw value.
func DecodeFields(raw any, names ...string) ([]float64, error) {
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	vs := make([]float64, len(names))

	for idx, name := range names {
		v, ok := m[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrDecode, name)
		}

		vs[idx], err = cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrDecode, name, err)
		}
	}

	return vs, nil
}
