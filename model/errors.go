package model

import "github.com/pkg/errors"

var (
	// ErrInputFormat covers unreadable files and unsupported timing formats.
	// It aborts the whole run.
	ErrInputFormat = errors.New("invalid input file")
	ErrSMPTE       = errors.Wrap(ErrInputFormat, "SMPTE frame timing is not supported")

	// ErrUnknownOption aborts before the input file is touched.
	ErrUnknownOption = errors.New("invalid option")

	// ErrOptionValue is recoverable, the option keeps its default.
	ErrOptionValue = errors.New("invalid option value")
)
