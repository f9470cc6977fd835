package cxf

import (
	"errors"
	"fmt"
)

// ErrData matches every error caused by the content of the input file.
var ErrData = errors.New("invalid cxf data")

type dataError struct {
	msg string
}

func (e *dataError) Error() string { return e.msg }

func (e *dataError) Is(target error) bool { return target == ErrData }

func newDataError(msg string) error {
	return &dataError{msg: msg}
}

var (
	ErrEmptyDocument           = newDataError("no cxf data provided")
	ErrMalformedXML            = newDataError("malformed cxf xml")
	ErrNoObjectCollection      = newDataError("no ObjectCollection found in cxf file")
	ErrNoSpectra               = newDataError("no spectrum data found in cxf file")
	ErrNoSpecifications        = newDataError("no color specifications found in cxf file")
	ErrUnresolvedSpecification = newDataError("color specification not found")
	ErrMissingCondition        = newDataError("measurement condition missing or not supported")
	ErrEmptySpectrum           = newDataError("no spectrum data to normalize")
	ErrMalformedValue          = newDataError("spectrum value is not a number")
	ErrWavelengthRange         = newDataError("start wavelength must be between 340 and 830")
	ErrStep                    = newDataError("step must be defined and greater than zero")
)

// SpectrumError ties a failure to the spectrum and specification that
// caused it.
type SpectrumError struct {
	Name          string
	Specification string
	Err           error
}

func (e *SpectrumError) Error() string {
	return fmt.Sprintf("spectrum %q (specification %q): %v", e.Name, e.Specification, e.Err)
}

func (e *SpectrumError) Unwrap() error { return e.Err }
