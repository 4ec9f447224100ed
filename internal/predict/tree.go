package predict

import (
	"math/rand"
	"sort"
)

// TreeNode is one node of a regression tree. Fields are exported so a fitted
// model serializes as part of the persisted bundle.
type TreeNode struct {
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"value,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
}

// predict walks the tree to the leaf matching the feature row.
func (n *TreeNode) predict(row []float64) float64 {
	for !n.Leaf {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// treeParams bound tree growth.
type treeParams struct {
	maxDepth int
	minLeaf  int
	// mtry is the number of random feature candidates per split.
	mtry int
}

// growTree fits a regression tree on the rows selected by idx, minimizing
// the sum of squared errors at each split. Impurity decreases are
// accumulated into importance per feature.
func growTree(X [][]float64, y []float64, idx []int, depth int, p treeParams, rng *rand.Rand, importance []float64) *TreeNode {
	sum, sumSq := targetSums(y, idx)
	n := float64(len(idx))
	sse := sumSq - sum*sum/n

	if depth >= p.maxDepth || len(idx) < 2*p.minLeaf || sse <= 1e-12 {
		return &TreeNode{Leaf: true, Value: sum / n}
	}

	feature, threshold, gain, ok := bestSplit(X, y, idx, sse, p, rng)
	if !ok {
		return &TreeNode{Leaf: true, Value: sum / n}
	}
	importance[feature] += gain

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growTree(X, y, left, depth+1, p, rng, importance),
		Right:     growTree(X, y, right, depth+1, p, rng, importance),
	}
}

// bestSplit scans a random feature subset for the split with the largest
// SSE reduction that leaves at least minLeaf rows on each side.
func bestSplit(X [][]float64, y []float64, idx []int, parentSSE float64, p treeParams, rng *rand.Rand) (feature int, threshold, gain float64, ok bool) {
	numFeatures := len(X[idx[0]])
	candidates := rng.Perm(numFeatures)[:p.mtry]

	sorted := make([]int, len(idx))
	bestGain := 0.0

	for _, f := range candidates {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool {
			return X[sorted[a]][f] < X[sorted[b]][f]
		})

		// Incremental left/right sums over the sorted order.
		var leftSum, leftSq float64
		totalSum, totalSq := targetSums(y, idx)

		for i := 0; i < len(sorted)-1; i++ {
			v := y[sorted[i]]
			leftSum += v
			leftSq += v * v

			// Can't split between equal feature values.
			if X[sorted[i]][f] == X[sorted[i+1]][f] {
				continue
			}
			nLeft := i + 1
			nRight := len(sorted) - nLeft
			if nLeft < p.minLeaf || nRight < p.minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			childSSE := (leftSq - leftSum*leftSum/float64(nLeft)) +
				(rightSq - rightSum*rightSum/float64(nRight))

			if g := parentSSE - childSSE; g > bestGain {
				bestGain = g
				feature = f
				threshold = (X[sorted[i]][f] + X[sorted[i+1]][f]) / 2
			}
		}
	}

	if bestGain <= 0 {
		return 0, 0, 0, false
	}
	return feature, threshold, bestGain, true
}

func targetSums(y []float64, idx []int) (sum, sumSq float64) {
	for _, i := range idx {
		sum += y[i]
		sumSq += y[i] * y[i]
	}
	return sum, sumSq
}
