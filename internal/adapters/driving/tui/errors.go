package tui

import "errors"

// ErrMissingInterfaceService is returned when the interface service is not provided.
var ErrMissingInterfaceService = errors.New("tui: interface service is required")

// ErrMissingMetricsService is returned when the metrics service is not provided.
var ErrMissingMetricsService = errors.New("tui: metrics service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrInvalidPorts is returned when no ports are given.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
