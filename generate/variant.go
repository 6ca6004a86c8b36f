package generate

import (
	"strings"

	"github.com/brandlens/photogen/common/config"
)

// SelectModel picks the backend model variant for a batch. A model-identity
// reference always escalates to the high-capability variant: a lone model
// photo cannot tolerate identity drift. Multi-reference requests are already
// maximally constrained by the condensed prompt, so the fast variant is good
// enough there and keeps latency bounded.
func SelectModel(hasModelRef bool, queueInternal bool, quality string, refCount int) string {
	if hasModelRef {
		return config.ModelVariantHigh
	}
	if queueInternal {
		return config.ModelVariantFast
	}
	if strings.EqualFold(quality, "high") && refCount < 2 {
		return config.ModelVariantHigh
	}
	return config.ModelVariantFast
}
