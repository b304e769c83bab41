package core

import "math"

// Level is a linear brightness request in the range 0-255.
type Level = uint8

// Predefined brightness levels for game elements.
const (
	LevelOff  Level = 0
	LevelDim  Level = 48
	LevelHalf Level = 128
	LevelFull Level = 255
)

// shades maps brightness to characters for ASCII dumps, darkest first.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeRune returns a block character approximating a brightness level.
func ShadeRune(v uint8) rune {
	if v == 0 {
		return shades[0]
	}
	idx := 1 + int(v)*(len(shades)-1)/256
	return shades[Min(idx, len(shades)-1)]
}

// GammaTable precomputes round(255 * (v/255)^gamma) for every level.
func GammaTable(gamma float64) [256]uint8 {
	var lut [256]uint8
	for v := range lut {
		lut[v] = uint8(math.Round(255 * math.Pow(float64(v)/255, gamma)))
	}
	return lut
}

// Scale returns level scaled by a coverage fraction in [0, 1], rounded.
func Scale(level uint8, fraction float64) uint8 {
	return uint8(math.Round(float64(level) * ClampF(fraction, 0, 1)))
}
