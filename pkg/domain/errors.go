package domain

import "errors"

// ErrProfileNotFound is returned when no settings have been stored for an account.
var ErrProfileNotFound = errors.New("settings profile not found")

// ErrUnknownPath is returned when a change targets a path no lens is registered for.
var ErrUnknownPath = errors.New("unknown settings path")

// ErrTypeMismatch is returned when a change carries a value of the wrong kind for its path.
var ErrTypeMismatch = errors.New("settings value type mismatch")

// ErrInvalidValue is returned when a value is outside the allowed set for its path.
var ErrInvalidValue = errors.New("invalid settings value")

// ErrFieldDisabled is returned when a disabled field receives an interaction.
var ErrFieldDisabled = errors.New("field is disabled")

// ErrDialogClosed is returned when navigating a settings dialog that was already closed.
var ErrDialogClosed = errors.New("settings dialog is closed")

// ErrUnknownField is returned when an interaction names a field no page defines.
var ErrUnknownField = errors.New("unknown settings field")

// ErrUnknownEntry is returned when navigating to an entry the dialog does not have.
var ErrUnknownEntry = errors.New("unknown navigation entry")
