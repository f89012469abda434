package runtime

import "errors"

// ErrUnsupportedBlob is returned by NativeEngine.Compile, which has no
// bytecode format of its own.
var ErrUnsupportedBlob = errors.New("runtime: unsupported blob")
