package convert

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-3ds/pkg/math"
	"github.com/Faultbox/midgard-3ds/pkg/scene"
)

// ApplyMasterScale scales the whole scene by the reciprocal of the file's
// master scale. A zero master scale is treated as 1.
func ApplyMasterScale(s *scene.Scene, masterScale float32, log *zap.Logger) {
	if masterScale == 0 {
		if log != nil {
			log.Warn("master scale is zero, assuming 1")
		}
		masterScale = 1
	}
	f := 1 / masterScale
	s.Root.Transform = s.Root.Transform.Mul(math.Scale(f, f, f))
}
