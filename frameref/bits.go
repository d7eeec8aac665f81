package frameref

import "math"

func float64bits(f float64) uint64 { return math.Float64bits(f) }

func bitsToFloat64(u uint64) float64 { return math.Float64frombits(u) }
