// Package lpc implements the PARCOR/LPC short-term prediction engine:
// windowing and autocorrelation, Levinson-Durbin PARCOR derivation,
// quantization to the wire's 7-bit coefficients, PARCOR->LPC conversion
// with overflow detection, residual generation, and the adaptive-order
// search that picks opt_order.
package lpc

import "math"

// Window produces the pre-roll window: sine-rect below or at 48 kHz,
// hann-rect above, scaled by a "depth" factor that shortens the taper for
// deeper block-switching subdivisions.
func Window(samples []int32, sampleRate int, depth int) []float64 {
	n := len(samples)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	taper := windowTaperLength(n, depth)
	for i, s := range samples {
		out[i] = float64(s) * windowGain(i, n, taper, sampleRate)
	}
	return out
}

// windowTaperLength returns the number of samples at each edge of the
// block that get a smooth taper rather than unity gain; deeper
// block-switching depths use a shorter, sharper taper.
func windowTaperLength(n, depth int) int {
	t := n / (4 + depth)
	if t < 1 {
		t = 1
	}
	if t > n/2 {
		t = n / 2
	}
	return t
}

// windowGain evaluates the rectangular-centered window with sine or
// Hann-shaped tapers at unit i of n, using a taper of length taper samples
// at each edge.
func windowGain(i, n, taper, sampleRate int) float64 {
	if i < taper {
		return edgeGain(i, taper, sampleRate)
	}
	if i >= n-taper {
		return edgeGain(n-1-i, taper, sampleRate)
	}
	return 1.0
}

func edgeGain(i, taper, sampleRate int) float64 {
	if taper <= 0 {
		return 1.0
	}
	x := float64(i) / float64(taper)
	if sampleRate <= 48000 {
		// sine-rect: sin(pi/2 * x) ramp.
		return math.Sin(math.Pi / 2 * x)
	}
	// hann-rect: raised-cosine ramp.
	return 0.5 - 0.5*math.Cos(math.Pi*x)
}
