// Package repository defines sentinel errors that are reused across
// multiple repositories. These values allow handlers to distinguish
// failure scenarios with errors.Is: ErrInsufficientCredits maps to a
// 402, the *NotFound values to 404s.
package repository

import "errors"

// ErrInsufficientCredits is returned by the conditional debit when
// the balance cannot cover the requested amount. The statement never
// drives a balance negative, so a concurrent spender observes this
// error instead of causing a lost update.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ErrProfileNotFound is returned when no profile row exists for a
// user id. Profiles are provisioned at registration, so this
// indicates a missing or foreign account.
var ErrProfileNotFound = errors.New("profile not found")

// ErrAnalysisNotFound is returned when an analysis id has no cached
// video row.
var ErrAnalysisNotFound = errors.New("analysis not found")

// ErrRequestNotFound is returned when a relay callback references an
// unknown video request id.
var ErrRequestNotFound = errors.New("video request not found")
