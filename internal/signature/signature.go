// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package signature is the hook dispatch kernel's ordered parameter-name
// identity of a callable, compared with receiver erasure.
//
// Go erases parameter names from a func value at compile time, so unlike
// simplug (which introspects a live function object) a Signature here is
// a value the host declares explicitly when it builds a spec or an impl —
// the same "decorator becomes an explicit attach-time metadata record"
// move the rest of the kernel makes.
package signature

import "fmt"

// Signature is the ordered parameter-name list of a callable, with an
// optional leading receiver parameter that dispatch erases.
type Signature struct {
	names       []string
	hasReceiver bool
}

// New builds a signature with no receiver.
func New(names ...string) Signature {
	cp := make([]string, len(names))
	copy(cp, names)
	return Signature{names: cp}
}

// NewWithReceiver builds a signature whose first parameter is a receiver,
// erased before comparison (see Erased and Equal).
func NewWithReceiver(receiverName string, names ...string) Signature {
	all := make([]string, 0, len(names)+1)
	all = append(all, receiverName)
	all = append(all, names...)
	return Signature{names: all, hasReceiver: true}
}

// HasReceiver reports whether the first parameter is a receiver.
func (s Signature) HasReceiver() bool {
	return s.hasReceiver
}

// Names returns the full, unerased parameter-name list.
func (s Signature) Names() []string {
	cp := make([]string, len(s.names))
	copy(cp, s.names)
	return cp
}

// Erased returns the parameter-name list with the receiver, if any,
// removed.
func (s Signature) Erased() []string {
	if !s.hasReceiver || len(s.names) == 0 {
		return s.Names()
	}
	cp := make([]string, len(s.names)-1)
	copy(cp, s.names[1:])
	return cp
}

// Equal compares two signatures after receiver erasure: ordered list
// equality over names only. Defaults, kind, and types play no role — Go
// has no equivalent notion on a func value anyway.
func (s Signature) Equal(other Signature) bool {
	a, b := s.Erased(), other.Erased()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String renders the erased parameter list for diagnostics and errors.
func (s Signature) String() string {
	return fmt.Sprintf("%v", s.Erased())
}
