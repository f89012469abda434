package main

import "errors"

var (
	ErrUnknownModule    = errors.New("pluginopctl: unknown module")
	ErrUnknownOperation = errors.New("pluginopctl: unknown operation")
	ErrMalformedArg     = errors.New("pluginopctl: malformed argument")
)
