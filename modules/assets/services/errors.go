package services

import "github.com/exec-platform/asset-management/pkg/serrors"

var (
	ErrMismatchedIDs = serrors.NewError(
		"MISMATCHED_IDS",
		"path id does not match body id",
		"omit the id from the request body or make it match the path",
	)
)
