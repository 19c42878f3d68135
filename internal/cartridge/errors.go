package cartridge

import (
	"errors"
	"fmt"
)

// ErrHeaderTooSmall is returned when a ROM image is too short to hold
// a cartridge header.
var ErrHeaderTooSmall = errors.New("cartridge: rom too small for header")

// UnsupportedControllerError is returned when the cartridge type byte
// names a controller that is not emulated.
type UnsupportedControllerError struct {
	Code Type
}

func (e *UnsupportedControllerError) Error() string {
	return fmt.Sprintf("cartridge: unsupported controller %s (type 0x%02X)", e.Code.Controller(), uint8(e.Code))
}
