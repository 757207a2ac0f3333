package main

import "errors"

// Sentinel errors for the command line.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrUnknownFormat = errors.New("unknown output format")
	ErrReadInput     = errors.New("failed to read input")
	ErrWriteOutput   = errors.New("failed to write output")
)
