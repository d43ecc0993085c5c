//go:build !opencv

package imageio

// Default returns the codec compiled into this binary.
func Default() Codec { return NativeCodec{} }
