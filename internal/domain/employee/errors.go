package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrGroupNotFound    = errors.New("group not found")
)
