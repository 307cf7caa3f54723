package errors

import "fmt"

// SuccessABCICode is the code of a successful response.
const SuccessABCICode = 0

// Errors that do not wrap a root error share the internal code. Their
// message is replaced outside of debug mode, as it may carry anything.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err. Debug
// mode logs the full stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	}
	return code, err.Error()
}

// abciCode returns the code of the first root error found by unwrapping
// err.
func abciCode(err error) uint32 {
	for err != nil {
		if c, ok := err.(interface{ ABCICode() uint32 }); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}
