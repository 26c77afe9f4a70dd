package service

import "errors"

var (
	// ErrNoMergeFunc is returned by the constructor when no merge function
	// was supplied. The merge algorithm is an external collaborator; the
	// engine cannot substitute one.
	ErrNoMergeFunc = errors.New("no merge function provided")
)
