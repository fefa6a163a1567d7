package ir

import "errors"

var (
	ErrParse   = errors.New("parse error")
	ErrConvert = errors.New("convert error")
)
