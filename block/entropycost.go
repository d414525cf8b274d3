package block

import (
	"github.com/go-als/alsenc/alsframe"
	"github.com/go-als/alsenc/entropy"
)

// exactResidualBits is the cheap per-candidate-order cost function the
// short-term order search's exact mode uses: the Rice-exact total, since
// running the full BGMC search for every candidate order would be
// prohibitively expensive and only a consistent relative ordering across
// orders is required here, not the final entropy coder choice.
func exactResidualBits(residuals []int32, maxK int) int {
	return entropy.SearchRiceExact(residuals, maxK).Bits
}

// entropyResult is the chosen entropy coding for a block's residuals,
// either Rice or BGMC, built from the search results in package entropy.
type entropyResult struct {
	info alsframe.EntropyInfo
	bits int
}

// searchEntropy runs the Rice or BGMC parameter search, according to the
// stage's coder choice and cost mode.
func searchEntropy(residuals []int32, maxK int, stage alsframe.Stage) entropyResult {
	if !stage.UseBGMC {
		var r entropy.RiceResult
		if stage.Cost == alsframe.CostEstimate {
			r = entropy.SearchRiceEstimate(residuals, maxK)
		} else {
			r = entropy.SearchRiceExact(residuals, maxK)
		}
		return entropyResult{
			info: alsframe.EntropyInfo{
				BGMC:      false,
				SubBlocks: r.SubBlocks,
				RiceK:     r.K,
				Bits:      r.Bits,
			},
			bits: r.Bits,
		}
	}

	var r entropy.BGMCResult
	if stage.Cost == alsframe.CostEstimate {
		r = entropy.SearchBGMCEstimate(residuals)
	} else {
		r = entropy.SearchBGMCExact(residuals, 128)
	}
	params := make([]alsframe.BGMCParam, len(r.Params))
	for i, p := range r.Params {
		params[i] = alsframe.BGMCParam{S: p.S, SX: p.SX}
	}
	return entropyResult{
		info: alsframe.EntropyInfo{
			BGMC:      true,
			SubBlocks: r.SubBlocks,
			BGMCParam: params,
			Bits:      r.Bits,
		},
		bits: r.Bits,
	}
}
