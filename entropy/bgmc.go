package entropy

import "math"

// bgmcLogConst is the constant term for the BGMC parameter estimate:
// 16*(log2(sum) - log2(N) + 0.97092725747512664825).
const bgmcLogConst = 0.97092725747512664825

// BGMCCoder is the external arithmetic-coder contract
// (bgmc_encode_init/msb/end): its behavior is specified, its
// implementation is explicitly out of scope for this module. Callers that
// want real BGMC bitstream output must supply a concrete implementation;
// without one, both searches below cost candidates with the exact Rice
// bit count as a proxy.
type BGMCCoder interface {
	// Init clears arithmetic-coder state ahead of a block.
	Init()
	// EncodeMSB consumes the MSB portion of residuals under parameters
	// (k, delta, max, s, sx), returning the number of bits used or an
	// error if the coder state cannot accept them.
	EncodeMSB(residuals []int32, k, delta, max, s, sx int) (bitsUsed int, err error)
	// End flushes any pending carry and returns the final bits emitted.
	End() (bitsUsed int, err error)
}

// BGMCParam is one sub-block's (s, sx) parameter pair.
type BGMCParam struct {
	S, SX int
}

// estimateBGMCParam derives (s, sx) for one sub-block from its residual
// sum.
func estimateBGMCParam(values []int32) BGMCParam {
	n := len(values)
	if n == 0 {
		return BGMCParam{}
	}
	var sum uint64
	for _, v := range values {
		sum += foldedAbs(v)
	}
	if sum == 0 {
		sum = 1
	}
	tmp := int(16 * (math.Log2(float64(sum)) - math.Log2(float64(n)) + bgmcLogConst))
	if tmp < 0 {
		tmp = 0
	}
	s := tmp >> 4
	sx := tmp & 15
	if s > 15 {
		s = 15
	}
	return BGMCParam{S: s, SX: sx}
}

// bgmcParamCost stands in for the bit cost of encoding values under the
// given BGMC parameter: without a concrete BGMCCoder no arithmetic-coded
// count is available, so it returns the exact Rice bit count at k = s.
func bgmcParamCost(values []int32, p BGMCParam) int {
	k := p.S
	if k < 0 {
		k = 0
	}
	return ExactRiceBits(values, k)
}

// BGMCResult is the outcome of a BGMC parameter search.
type BGMCResult struct {
	PartitionDepth int // p in [0,3]
	SubBlocks      int
	Params         []BGMCParam
	Bits           int
}

// SearchBGMCEstimate evaluates partition depths p in [0,3] (sub-block
// counts 1,2,4,8) and picks the cheapest.
func SearchBGMCEstimate(values []int32) BGMCResult {
	var best BGMCResult
	best.Bits = math.MaxInt32

	legal := LegalSubBlockCounts(len(values))
	legalSet := make(map[int]bool, len(legal))
	for _, n := range legal {
		legalSet[n] = true
	}

	for p := 0; p <= 3; p++ {
		n := 1 << uint(p)
		if !legalSet[n] {
			continue
		}
		sub := len(values) / n
		params := make([]BGMCParam, n)
		total := 0
		for i := 0; i < n; i++ {
			part := values[i*sub : (i+1)*sub]
			pr := estimateBGMCParam(part)
			params[i] = pr
			total += bgmcParamCost(part, pr) + 9 // s/sx field overhead
		}
		if total < best.Bits {
			best = BGMCResult{PartitionDepth: p, SubBlocks: n, Params: params, Bits: total}
		}
	}
	if best.Bits == math.MaxInt32 {
		pr := estimateBGMCParam(values)
		best = BGMCResult{PartitionDepth: 0, SubBlocks: 1, Params: []BGMCParam{pr}, Bits: bgmcParamCost(values, pr) + 9}
	}
	return best
}

// SearchBGMCExact performs the descent search (seed from a neighbor, probe
// ±5, then ±4, then descend on the combined parameter s0 = (s<<4)|sx until
// 5 consecutive non-improvements). Without a concrete BGMCCoder, "exact"
// cost falls back to the same exact-Rice proxy SearchBGMCEstimate uses;
// the search strategy itself (seeding, probing, descent) is implemented
// faithfully so a real BGMCCoder can be dropped in later without
// restructuring the caller.
func SearchBGMCExact(values []int32, seedS0 int) BGMCResult {
	legal := LegalSubBlockCounts(len(values))
	legalSet := make(map[int]bool, len(legal))
	for _, n := range legal {
		legalSet[n] = true
	}

	var best BGMCResult
	best.Bits = math.MaxInt32
	for p := 0; p <= 3; p++ {
		n := 1 << uint(p)
		if !legalSet[n] {
			continue
		}
		sub := len(values) / n
		params := make([]BGMCParam, n)
		total := 0
		prevS0 := seedS0
		for i := 0; i < n; i++ {
			part := values[i*sub : (i+1)*sub]
			s0, bits := descendS0(part, prevS0)
			params[i] = BGMCParam{S: s0 >> 4, SX: s0 & 15}
			total += bits + 9
			prevS0 = s0
		}
		if total < best.Bits {
			best = BGMCResult{PartitionDepth: p, SubBlocks: n, Params: params, Bits: total}
		}
	}
	return best
}

// descendS0 implements the seeded probe-then-descend search over the
// combined parameter s0 in [0,255].
func descendS0(values []int32, seed int) (s0, bits int) {
	clip := func(v int) int {
		if v < 5 {
			return 5
		}
		if v > 250 {
			return 250
		}
		return v
	}
	s0 = clip(seed)
	cost := func(v int) int {
		return bgmcParamCost(values, BGMCParam{S: v >> 4, SX: v & 15})
	}
	bits = cost(s0)

	up := cost(clip(s0 + 5))
	down := cost(clip(s0 - 5))
	step := 0
	switch {
	case up < bits && up <= down:
		step = 5
	case down < bits:
		step = -5
	default:
		up4 := cost(clip(s0 + 4))
		down4 := cost(clip(s0 - 4))
		switch {
		case up4 < bits && up4 <= down4:
			step = 4
		case down4 < bits:
			step = -4
		default:
			return s0, bits
		}
	}

	noImprove := 0
	probe := s0
	for noImprove < 5 {
		next := clip(probe + step)
		if next == probe {
			break
		}
		probe = next
		nb := cost(probe)
		if nb < bits {
			s0, bits = probe, nb
			noImprove = 0
		} else {
			noImprove++
		}
	}
	return s0, bits
}
