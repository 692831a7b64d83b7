// internal/multitrack/params.go
package multitrack

import (
	"errors"
	"fmt"
)

// Param identifies one of the user array endpoints.
type Param int

const (
	ParamStart Param = iota
	ParamEnd
	ParamBin
)

// Parameter names, as registered with the control system.
const (
	StartParamName = "CCD_MULTI_TRACK_START"
	EndParamName   = "CCD_MULTI_TRACK_END"
	BinParamName   = "CCD_MULTI_TRACK_BIN"
)

// Params lists the array endpoints in publication order.
var Params = []Param{ParamStart, ParamEnd, ParamBin}

// ErrUnsupportedParam is returned for writes to a parameter this
// package does not own.
var ErrUnsupportedParam = errors.New("multitrack: unsupported parameter")

func (p Param) String() string {
	switch p {
	case ParamStart:
		return StartParamName
	case ParamEnd:
		return EndParamName
	case ParamBin:
		return BinParamName
	default:
		return fmt.Sprintf("Param(%d)", int(p))
	}
}

// ParseParam maps a parameter name to its Param.
func ParseParam(name string) (Param, error) {
	switch name {
	case StartParamName:
		return ParamStart, nil
	case EndParamName:
		return ParamEnd, nil
	case BinParamName:
		return ParamBin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedParam, name)
	}
}
