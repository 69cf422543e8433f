package location

import "errors"

var (
	ErrLocationNotFound = errors.New("work location not found")
	ErrLocationInUse    = errors.New("work location is referenced by attendance records")
)
