package predict

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Forest is a bagged ensemble of regression trees. Each tree is fit on a
// bootstrap sample with a random feature subset considered per split;
// predictions average across trees.
type Forest struct {
	Trees       []*TreeNode `json:"trees"`
	NumFeatures int         `json:"num_features"`
	// Importance holds normalized per-feature impurity decreases,
	// indexed like the feature columns.
	Importance []float64 `json:"importance"`
}

// forestParams bound ensemble training.
type forestParams struct {
	numTrees int
	tree     treeParams
}

// trainForest fits the ensemble. The caller owns the random source, which
// makes training reproducible for a fixed seed.
func trainForest(X [][]float64, y []float64, p forestParams, rng *rand.Rand) *Forest {
	numFeatures := len(X[0])
	importance := make([]float64, numFeatures)

	trees := make([]*TreeNode, p.numTrees)
	for t := 0; t < p.numTrees; t++ {
		// Bootstrap sample with replacement.
		idx := make([]int, len(X))
		for i := range idx {
			idx[i] = rng.Intn(len(X))
		}
		trees[t] = growTree(X, y, idx, 0, p.tree, rng, importance)
	}

	if total := floats.Sum(importance); total > 0 {
		floats.Scale(1/total, importance)
	}

	return &Forest{
		Trees:       trees,
		NumFeatures: numFeatures,
		Importance:  importance,
	}
}

// Predict returns the ensemble mean for one feature row.
func (f *Forest) Predict(row []float64) float64 {
	var sum float64
	for _, tree := range f.Trees {
		sum += tree.predict(row)
	}
	return sum / float64(len(f.Trees))
}
