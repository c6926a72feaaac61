package annexb

import (
	"errors"
	"fmt"
)

var ErrConfiguration = errors.New("annexb: invalid configuration")
var ErrFormat = errors.New("annexb: malformed byte stream")
var ErrTermination = errors.New("annexb: byte stream exhausted")

// ConfigurationError reports a scan width too narrow for the searched pattern.
type ConfigurationError struct {
	Width      int
	PatternLen int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: scan width %d is smaller than pattern length %d", ErrConfiguration, e.Width, e.PatternLen)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// IncorrectByteSequenceError is returned when the bytes at Offset are not the
// expected marker.
type IncorrectByteSequenceError struct {
	Offset   int
	Expected []byte
	Got      []byte
}

func (e *IncorrectByteSequenceError) Error() string {
	return fmt.Sprintf("%s: expected % X at offset %d, got % X", ErrFormat, e.Expected, e.Offset, e.Got)
}

func (e *IncorrectByteSequenceError) Unwrap() error { return ErrFormat }

// UnexpectedByteError is returned when a non-zero byte shows up where only
// zero padding may appear.
type UnexpectedByteError struct {
	Offset   int
	Found    byte
	Expected string
}

func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("%s: unexpected byte 0x%02X at offset %d (expected %s)", ErrFormat, e.Found, e.Offset, e.Expected)
}

func (e *UnexpectedByteError) Unwrap() error { return ErrFormat }

type MisalignedIndicesError struct {
	Start int
	End   int
}

func (e *MisalignedIndicesError) Error() string {
	return fmt.Sprintf("%s: unit end %d precedes unit start %d", ErrFormat, e.End, e.Start)
}

func (e *MisalignedIndicesError) Unwrap() error { return ErrFormat }

// TerminationError is returned when the buffer runs out before a required
// marker was found. Stage names the step that was searching.
type TerminationError struct {
	Offset int
	Stage  string
}

func (e *TerminationError) Error() string {
	return fmt.Sprintf("%s: no marker found from offset %d while %s", ErrTermination, e.Offset, e.Stage)
}

func (e *TerminationError) Unwrap() error { return ErrTermination }
