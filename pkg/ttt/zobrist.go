package ttt

// Fixed seed, so keys are stable between runs
const zobristSeed uint64 = 0x9E3779B97F4A7C15

// one key per (cell, token), status bits always cleared
var zobristKeys [MaxCells][2]Key

func init() {
	state := zobristSeed
	for cell := range zobristKeys {
		for t := range zobristKeys[cell] {
			zobristKeys[cell][t] = Key(splitmix64(&state)) &^ keyStatusMask
		}
	}
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func zobristKey(cell int, token Token) Key {
	return zobristKeys[cell][token-1]
}
