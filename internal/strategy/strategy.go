// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package strategy is the hook dispatch kernel's twenty named
// result-collection strategies. The bit layout below is grounded directly
// on the Python `simplug` package, which encodes the three orthogonal
// axes — scope, reduction, emptiness — as bits of a single byte rather
// than twenty independent branches:
//
//	bit 6 (0x40) TRY    - emptiness policy: null instead of ResultUnavailable
//	bit 5 (0x20) ALL    - scope: execute every eligible impl
//	bit 4 (0x10) AVAIL  - reduction: filter out / stop at non-null results
//	bits 0-3     ID     - disambiguates within the ALL and non-ALL groups
package strategy

import "errors"

// Strategy is one of the twenty named result-collection strategies.
type Strategy uint8

// ErrUnavailable is returned by Reduce when a base-form (non-TRY_)
// strategy finds nothing to reduce. Callers translate this into the
// public ResultUnavailable error; Reduce itself stays errors-package
// agnostic of the kernel's oops-based taxonomy.
var ErrUnavailable = errors.New("result unavailable")

const (
	bitTry   Strategy = 0b100_0000
	bitAll   Strategy = 0b010_0000
	bitAvail Strategy = 0b001_0000
)

// The twenty named strategies, values matching simplug's own bit layout
// bit for bit so the family-membership tests below (`s&bitTry != 0`, etc.)
// carry over unchanged.
const (
	ALL              Strategy = 0b010_0000
	ALLAvails        Strategy = 0b011_0001
	ALLFirst         Strategy = 0b010_0010
	TryALLFirst      Strategy = 0b110_0010
	ALLLast          Strategy = 0b010_0011
	TryALLLast       Strategy = 0b110_0011
	ALLFirstAvail    Strategy = 0b011_0100
	TryALLFirstAvail Strategy = 0b111_0100
	ALLLastAvail     Strategy = 0b011_0101
	TryALLLastAvail  Strategy = 0b111_0101
	First            Strategy = 0b000_0110
	TryFirst         Strategy = 0b100_0110
	Last             Strategy = 0b000_0111
	TryLast          Strategy = 0b100_0111
	FirstAvail       Strategy = 0b001_1000
	TryFirstAvail    Strategy = 0b101_1000
	LastAvail        Strategy = 0b001_1001
	TryLastAvail     Strategy = 0b101_1001
	Single           Strategy = 0b000_1010
	TrySingle        Strategy = 0b100_1010
)

// names is used only for diagnostics/debugging output.
var names = map[Strategy]string{
	ALL:              "ALL",
	ALLAvails:        "ALL_AVAILS",
	ALLFirst:         "ALL_FIRST",
	TryALLFirst:      "TRY_ALL_FIRST",
	ALLLast:          "ALL_LAST",
	TryALLLast:       "TRY_ALL_LAST",
	ALLFirstAvail:    "ALL_FIRST_AVAIL",
	TryALLFirstAvail: "TRY_ALL_FIRST_AVAIL",
	ALLLastAvail:     "ALL_LAST_AVAIL",
	TryALLLastAvail:  "TRY_ALL_LAST_AVAIL",
	First:            "FIRST",
	TryFirst:         "TRY_FIRST",
	Last:             "LAST",
	TryLast:          "TRY_LAST",
	FirstAvail:       "FIRST_AVAIL",
	TryFirstAvail:    "TRY_FIRST_AVAIL",
	LastAvail:        "LAST_AVAIL",
	TryLastAvail:     "TRY_LAST_AVAIL",
	Single:           "SINGLE",
	TrySingle:        "TRY_SINGLE",
}

// String renders the strategy's canonical name, or "UNKNOWN_STRATEGY" for
// an unrecognized value.
func (s Strategy) String() string {
	if n, ok := names[s]; ok {
		return n
	}
	return "UNKNOWN_STRATEGY"
}

// IsSingle reports whether s is SINGLE or TRY_SINGLE — the only family
// that consumes a routing key.
func (s Strategy) IsSingle() bool {
	base := s &^ bitTry
	return base == Single&^bitTry
}

// Call is one eligible impl, not yet invoked. Invoke must be idempotent
// only in the sense that Reduce calls it at most once per Call; it is the
// caller's Invoke closure that actually runs the impl (sync call, or a
// blocking read on an async result channel).
type Call struct {
	PluginName string
	Invoke     func() (any, error)
}

// Result is what Reduce hands back to the dispatcher.
type Result struct {
	// Value is the reduced value. Meaningless when Reduce also returns a
	// non-nil error.
	Value any
	// SingleWithoutTarget is true when a SINGLE/TRY_SINGLE reduction had
	// no routing key and fell back to the last eligible impl.
	SingleWithoutTarget bool
}

// Reduce executes some prefix (or all) of calls, per s's scope axis, and
// folds the outcomes per s's reduction and emptiness axes.
// hasTarget/target implement the SINGLE-family routing key; they are ignored by every other strategy.
func Reduce(s Strategy, calls []Call, hasTarget bool, target string) (Result, error) {
	if s&bitTry != 0 {
		res, err := Reduce(s&^bitTry, calls, hasTarget, target)
		if errors.Is(err, ErrUnavailable) {
			return Result{}, nil
		}
		return res, err
	}

	if s&bitAll != 0 {
		return reduceAll(s, calls)
	}

	switch s {
	case First:
		if len(calls) == 0 {
			return Result{}, ErrUnavailable
		}
		v, err := calls[0].Invoke()
		return Result{Value: v}, err
	case Last:
		if len(calls) == 0 {
			return Result{}, ErrUnavailable
		}
		v, err := calls[len(calls)-1].Invoke()
		return Result{Value: v}, err
	case FirstAvail:
		for _, c := range calls {
			v, err := c.Invoke()
			if err != nil {
				return Result{}, err
			}
			if v != nil {
				return Result{Value: v}, nil
			}
		}
		return Result{}, ErrUnavailable
	case LastAvail:
		for i := len(calls) - 1; i >= 0; i-- {
			v, err := calls[i].Invoke()
			if err != nil {
				return Result{}, err
			}
			if v != nil {
				return Result{Value: v}, nil
			}
		}
		return Result{}, ErrUnavailable
	case Single:
		return reduceSingle(calls, hasTarget, target)
	default:
		return Result{}, errors.New("strategy: unknown strategy " + s.String())
	}
}

func reduceAll(s Strategy, calls []Call) (Result, error) {
	out := make([]any, len(calls))
	for i, c := range calls {
		v, err := c.Invoke()
		if err != nil {
			return Result{}, err
		}
		out[i] = v
	}

	switch s {
	case ALL:
		return Result{Value: out}, nil
	case ALLAvails:
		avail := make([]any, 0, len(out))
		for _, v := range out {
			if v != nil {
				avail = append(avail, v)
			}
		}
		return Result{Value: avail}, nil
	case ALLFirst:
		if len(out) == 0 {
			return Result{}, ErrUnavailable
		}
		return Result{Value: out[0]}, nil
	case ALLLast:
		if len(out) == 0 {
			return Result{}, ErrUnavailable
		}
		return Result{Value: out[len(out)-1]}, nil
	case ALLFirstAvail:
		for _, v := range out {
			if v != nil {
				return Result{Value: v}, nil
			}
		}
		return Result{}, ErrUnavailable
	case ALLLastAvail:
		for i := len(out) - 1; i >= 0; i-- {
			if out[i] != nil {
				return Result{Value: out[i]}, nil
			}
		}
		return Result{}, ErrUnavailable
	default:
		return Result{}, errors.New("strategy: unknown ALL-family strategy " + s.String())
	}
}

func reduceSingle(calls []Call, hasTarget bool, target string) (Result, error) {
	if len(calls) == 0 {
		return Result{}, ErrUnavailable
	}

	if hasTarget {
		for _, c := range calls {
			if c.PluginName == target {
				v, err := c.Invoke()
				return Result{Value: v}, err
			}
		}
		return Result{}, ErrUnavailable
	}

	last := calls[len(calls)-1]
	v, err := last.Invoke()
	return Result{Value: v, SingleWithoutTarget: true}, err
}
