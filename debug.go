package survivalmaze

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// FrameStats holds per-frame timing and draw metrics from the last Draw.
type FrameStats struct {
	UpdateTime time.Duration
	RenderTime time.Duration
	SubmitTime time.Duration
	Batches    int
	DrawCalls  int
	Instances  int
}

// debugLog writes frame stats at debug level. No-op unless debug mode is on.
func (g *Game) debugLog(stats FrameStats) {
	if !g.debug || !logger.IsLevelEnabled(log.DebugLevel) {
		return
	}
	logger.WithFields(log.Fields{
		"update":    stats.UpdateTime,
		"render":    stats.RenderTime,
		"submit":    stats.SubmitTime,
		"batches":   stats.Batches,
		"drawCalls": stats.DrawCalls,
		"instances": stats.Instances,
	}).Debug("frame")
}

// debugMaxTreeDepth is the skeleton depth above which a warning is logged.
const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if a composite model is nested deeper than
// debugMaxTreeDepth.
func debugCheckTreeDepth(root *CompositeNode) {
	depth := treeDepth(root)
	if depth > debugMaxTreeDepth {
		logger.WithFields(log.Fields{"node": root.Name, "depth": depth, "max": debugMaxTreeDepth}).
			Warn("composite model is deeply nested")
	}
}

func treeDepth(n *CompositeNode) int {
	deepest := 0
	for _, c := range n.children {
		if d := treeDepth(c); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
