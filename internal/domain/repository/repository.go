package repository

import (
	"errors"

	"tamilsociety/pkg/utils"
)

// ErrPreconditionFailed is returned by conditional updates whose filter on
// the current state did not match.
var ErrPreconditionFailed = errors.New("precondition failed")

// ListOptions carries sort and offset pagination. Limit 0 means no limit.
type ListOptions struct {
	Sort   utils.SortSpec
	Limit  int
	Offset int
}
