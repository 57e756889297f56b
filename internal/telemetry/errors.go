package telemetry

import "errors"

var (
	ErrUnknownExporter = errors.New("unknown trace exporter")
	ErrExporterSetup   = errors.New("error creating trace exporter")
)
