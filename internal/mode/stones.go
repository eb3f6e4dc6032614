package mode

import "github.com/talgya/stone-garden/internal/stone"

// StepAll advances every stone's eased motion. This is the default Update
// behavior modes compose in.
func StepAll(stones []*stone.Stone, dt float64) {
	for _, s := range stones {
		s.Step(dt)
	}
}

// TopmostAt hit-tests in reverse draw order so the stone rendered on top
// wins. Returns nil when no stone contains the point.
func TopmostAt(stones []*stone.Stone, x, y float64) *stone.Stone {
	for i := len(stones) - 1; i >= 0; i-- {
		if stones[i].Contains(x, y) {
			return stones[i]
		}
	}
	return nil
}

// BringToTop reorders the slice so s draws above all others. This is the
// sole z-order rule: last-added (or last-touched) draws on top.
func BringToTop(stones []*stone.Stone, s *stone.Stone) []*stone.Stone {
	for i, cur := range stones {
		if cur == s {
			copy(stones[i:], stones[i+1:])
			stones[len(stones)-1] = s
			break
		}
	}
	return stones
}

// Remove deletes s from the slice, preserving draw order.
func Remove(stones []*stone.Stone, s *stone.Stone) []*stone.Stone {
	for i, cur := range stones {
		if cur == s {
			return append(stones[:i], stones[i+1:]...)
		}
	}
	return stones
}

// Clusters partitions stones into proximity clusters by flood fill: a stone
// joins a cluster when it is within threshold of any current member, so
// chains of near stones merge even when the endpoints are far apart.
// Singletons are included; callers that only want groups filter them.
func Clusters(stones []*stone.Stone, threshold float64) [][]*stone.Stone {
	var clusters [][]*stone.Stone
	assigned := make(map[*stone.Stone]bool, len(stones))
	thresholdSq := threshold * threshold

	for _, seed := range stones {
		if assigned[seed] {
			continue
		}
		cluster := []*stone.Stone{seed}
		assigned[seed] = true

		// Frontier expansion until closure.
		for i := 0; i < len(cluster); i++ {
			cur := cluster[i]
			for _, other := range stones {
				if assigned[other] {
					continue
				}
				if cur.Pos.DistanceSq(other.Pos) <= thresholdSq {
					cluster = append(cluster, other)
					assigned[other] = true
				}
			}
		}
		clusters = append(clusters, cluster)
	}
	return clusters
}
