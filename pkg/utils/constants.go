package utils

import "time"

const (
	Version = "v1.2.0"
	CliName = "LayerProf"

	// QueryTimeout bounds every single chain query of a report run.
	QueryTimeout = 30 * time.Second
)
