package noise

// Hash mixes a 32-bit value with a double LCG-xorshift round. The constants
// are load-bearing: elevation output is only reproducible across builds if
// they stay exactly as-is.
func Hash(h uint32) uint32 {
	h = (h*1664525 + 1013904223) ^ (h >> 16)
	h = (h*1664525 + 1013904223) ^ (h >> 16)
	return h
}

// Hash2D returns a stable hash for 2D integer lattice coordinates and a seed.
func Hash2D(x, y, seed uint32) uint32 {
	return Hash(x ^ Hash(y^seed))
}

// UnitFloat maps a hash to [0, 1) using the top of the 24-bit range so the
// result is exact in a float32 mantissa.
func UnitFloat(h uint32) float32 {
	return float32(h&0x00FFFFFF) / float32(0x01000000)
}
