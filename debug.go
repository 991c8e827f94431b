package inkling

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and command metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
	nodeCount    int
}

// debugLog prints timing stats through the package logger at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	logger.Debugf("traverse: %v | sort: %v | submit: %v | total: %v",
		stats.traverseTime, stats.sortTime, stats.submitTime, total)
	logger.Debugf("entities: %d | commands: %d | epoch: %d",
		stats.nodeCount, stats.commandCount, s.epoch)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("inkling debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 16

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warnf("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// countNodes returns the number of nodes in the subtree rooted at n.
func countNodes(n *Node) int {
	count := 1
	for _, c := range n.children {
		count += countNodes(c)
	}
	return count
}
