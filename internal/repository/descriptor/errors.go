package descriptor

import "fmt"

// ReadError reports that a descriptor or marker file could not be read.
type ReadError struct {
	// Path is the file that failed to read.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports that a descriptor or marker file could not be decoded.
type ParseError struct {
	// Path is the file that failed to decode.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DirCreateError reports that a package directory could not be created.
type DirCreateError struct {
	// Path is the directory that failed to create.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *DirCreateError) Error() string {
	return fmt.Sprintf("create directory %s: %v", e.Path, e.Err)
}

func (e *DirCreateError) Unwrap() error { return e.Err }

// SerializeError reports that a descriptor could not be marshaled to TOML.
// The on-disk file is left untouched when this occurs.
type SerializeError struct {
	// Path is the file the serialized output was meant for.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("serialize %s: %v", e.Path, e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }

// WriteError reports that a serialized descriptor could not be written.
type WriteError struct {
	// Path is the file that failed to write.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
