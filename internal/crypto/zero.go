package crypto

// Zero overwrites every byte of the given slices. Call it on key
// material as soon as the key is no longer needed; the garbage collector
// gives no such guarantee.
//
// Go can still have copied the bytes elsewhere (stack growth, GC moves),
// so this shortens the window rather than closing it. That is the best
// a memory-safe runtime offers without locked pages.
func Zero(bs ...[]byte) {
	for _, b := range bs {
		for i := range b {
			b[i] = 0
		}
	}
}
