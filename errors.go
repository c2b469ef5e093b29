package gtfsroutes

import "errors"

var (
	ErrFile      = errors.New("file error")
	ErrParse     = errors.New("parse error")
	ErrSchema    = errors.New("schema error")
	ErrReference = errors.New("reference error")
	ErrFormat    = errors.New("format error")
)
