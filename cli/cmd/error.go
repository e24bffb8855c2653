package cmd

import "github.com/ardnew/confgen/conf"

var (
	ErrReadSource  = conf.NewError("read source")
	ErrWriteConfig = conf.NewError("write configuration file")
	ErrFileExists  = conf.NewError("file exists (use --force to overwrite)")
	ErrNoFlags     = conf.NewError("no flag values to write")
	ErrNotFound    = conf.NewError("no such value")
	ErrInvalidPath = conf.NewError("value path must have the form Section.KEY")
	ErrCheckFailed = conf.NewError("configuration check failed")
	ErrFormat      = conf.NewError("format output")
)
