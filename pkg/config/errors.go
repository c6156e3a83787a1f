package config

import "errors"

var (
	// ErrNilPointer is returned when a nil destination is passed to Load.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
	// ErrParsingEnv is returned when environment variables cannot be parsed
	// into the destination struct.
	ErrParsingEnv = errors.New("failed to parse environment into config")
	// ErrReadingFile is returned when the configuration file cannot be read.
	ErrReadingFile = errors.New("failed to read config file")
	// ErrParsingFile is returned when the configuration file is not valid
	// YAML for the destination struct.
	ErrParsingFile = errors.New("failed to parse config file")
)
