package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"paxala/internal/apperr"
)

// Optional is a field of a partial update. Set is true when the key was
// present in the JSON body; Value is nil for an explicit null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Amount is a money value sent either as a JSON number or a numeric string.
type Amount float64

// maxAmount is the first value a NUMERIC(12,2) column cannot hold.
const maxAmount = 1e10

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid amount %q", s)
	}
	if math.Abs(f) >= maxAmount {
		return fmt.Errorf("amount %q is out of range", s)
	}
	*a = Amount(f)
	return nil
}

// check rejects negative, non-finite and oversized amounts.
func (a *Amount) check(field string) error {
	if a == nil {
		return nil
	}
	f := float64(*a)
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return apperr.Validation("%s must be a finite number", field)
	case f < 0:
		return apperr.Validation("%s must not be negative", field)
	case f >= maxAmount:
		return apperr.Validation("%s must be less than %.0f", field, float64(maxAmount))
	}
	return nil
}

func (a *Amount) Float() *float64 {
	if a == nil {
		return nil
	}
	f := float64(*a)
	return &f
}
