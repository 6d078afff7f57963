package storage

import "fmt"

// Direction indicates whether a handle reads or writes.
type Direction int

const (
	// Read opens a file for reading.
	Read Direction = iota
	// Write opens a file for writing.
	Write
)

func (d Direction) String() string {
	if d == Write {
		return "write"
	}
	return "read"
}

// Encoding indicates how a handle treats the byte stream.
type Encoding int

const (
	// Binary passes bytes through untouched.
	Binary Encoding = iota
	// Text validates content as UTF-8 and counts written characters.
	Text
)

func (e Encoding) String() string {
	if e == Text {
		return "text"
	}
	return "binary"
}

// Mode is the decoded form of an open-mode string.
type Mode struct {
	Direction Direction
	Encoding  Encoding
}

// ParseMode decodes a mode string into a Mode value. Recognized modes
// are "r", "w" (text) and "rb", "wb" (binary); the empty string means
// "rb". Anything else fails with ErrInvalidMode.
func ParseMode(mode string) (Mode, error) {
	switch mode {
	case "", "rb":
		return Mode{Direction: Read, Encoding: Binary}, nil
	case "r":
		return Mode{Direction: Read, Encoding: Text}, nil
	case "wb":
		return Mode{Direction: Write, Encoding: Binary}, nil
	case "w":
		return Mode{Direction: Write, Encoding: Text}, nil
	default:
		return Mode{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}
