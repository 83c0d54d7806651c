// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package forge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a forge failure for the reconciler: transient errors
// are fatal unless continue-on-fail is set, known errors are always a
// non-fatal skip.
type ErrorKind string

const (
	KindTransient ErrorKind = "transient"
	KindKnown     ErrorKind = "known"
)

// emailTakenMessage is the well-known forge response on user creation when
// the address already belongs to an account; it is demoted to a skip.
const emailTakenMessage = "Email has already been taken"

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("forge %s error: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKnown reports whether err is a recognized, always-non-fatal forge error.
func IsKnown(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindKnown
}

func newError(err error) *Error {
	kind := KindTransient
	if strings.Contains(err.Error(), emailTakenMessage) {
		kind = KindKnown
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}
