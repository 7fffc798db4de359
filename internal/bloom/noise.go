package bloom

// hash3 mixes three integers into a well-spread 32-bit value.
func hash3(x, y, z int) uint32 {
	h := uint32(x*374761393 + y*668265263 + z*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// unitNoise returns a value in [0, 1) that depends only on (x, y, seed).
func unitNoise(x, y int, seed int64) float64 {
	return float64(hash3(x, y, int(seed))) / (1 << 32)
}
