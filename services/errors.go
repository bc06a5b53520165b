package services

import "errors"

// Common service-level errors
var (
	// Day errors
	ErrDayNotFound = errors.New("day not found")

	// Location errors
	ErrLocationNotFound = errors.New("location not found")

	// Tag errors
	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
)
