package decimal
import (
	"errors"
)

// encode errors, all raised before the first pixel is written
var (
	ErrEmptyMessage		= errors.New("decimal: message is empty")
	ErrUnsupportedScalar	= errors.New("decimal: character does not fit into 6 decimal digits")
	ErrCapacityExceeded	= errors.New("decimal: message does not fit into image")
	ErrLengthOverflow	= errors.New("decimal: message longer than the 12 digit length prefix allows")
)

// decode errors
var (
	ErrGridTooSmall		= errors.New("decimal: image cannot hold a length prefix")
	ErrMalformedLength	= errors.New("decimal: declared length exceeds image capacity")
)
