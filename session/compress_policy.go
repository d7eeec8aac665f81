package session

import (
	"github.com/arloliu/jwire/codec"
	"github.com/arloliu/jwire/estimate"
	"github.com/arloliu/jwire/value"
	"github.com/arloliu/jwire/wire"
)

// shouldCompress implements spec.md §4.4's policy: compress a frame value
// only when its estimated size exceeds codec.FrameCompressionThreshold and
// the peer is not local.
func shouldCompress(v value.Value, fc codec.FrameCodec, local bool) bool {
	if local {
		return false
	}

	if v.Kind() != wire.Series && v.Kind() != wire.Dataframe {
		return false
	}

	size := estimate.Size(v, frameSizerAdapter{fc})

	return size > codec.FrameCompressionThreshold
}

type frameSizerAdapter struct{ fc codec.FrameCodec }

func (a frameSizerAdapter) EstimateSize(frame any) int {
	if a.fc == nil {
		return 0
	}

	return a.fc.EstimateSize(frame)
}
