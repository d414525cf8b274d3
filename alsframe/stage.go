package alsframe

// OrderSearch selects how the adaptive-order search in the PARCOR/LPC
// engine terminates.
type OrderSearch uint8

const (
	// OrderSearchValley stops after max(2, M/6) consecutive
	// non-improvements past the current best.
	OrderSearchValley OrderSearch = iota
	// OrderSearchFull evaluates every candidate order.
	OrderSearchFull
)

// CostMode selects whether a search stage counts bits exactly or via a
// cheap closed-form estimate.
type CostMode uint8

const (
	CostEstimate CostMode = iota
	CostExact
)

// Stage is one of the three algorithmic stages the frame driver runs:
// joint-stereo analysis, block-switching search, and final encoding. Each
// is configured independently and stage configurations are immutable for
// the stream.
type Stage struct {
	Name string

	Cost         CostMode
	OrderSearch  OrderSearch
	UseBGMC      bool
	UseLTP       bool
	TestConstant bool
	TestLSBShift bool
}

// StagesForLevel returns the three stages (joint-stereo, block-switching,
// final) configured for a compression level: three algorithmic stages
// select encoder options from a per-compression-level table.
func StagesForLevel(level int) (jointStereo, blockSwitching, final Stage) {
	t := CompressionLevels[level]
	jointStereo = Stage{
		Name:         "joint-stereo",
		Cost:         CostEstimate,
		OrderSearch:  OrderSearchValley,
		UseBGMC:      false,
		UseLTP:       false,
		TestConstant: true,
		TestLSBShift: true,
	}
	blockSwitching = Stage{
		Name:         "block-switching",
		Cost:         CostEstimate,
		OrderSearch:  OrderSearchValley,
		UseBGMC:      t.BGMC,
		UseLTP:       t.LongTermPred,
		TestConstant: true,
		TestLSBShift: true,
	}
	final = Stage{
		Name:         "final",
		Cost:         CostExact,
		OrderSearch:  OrderSearchFull,
		UseBGMC:      t.BGMC,
		UseLTP:       t.LongTermPred,
		TestConstant: true,
		TestLSBShift: true,
	}
	return jointStereo, blockSwitching, final
}
