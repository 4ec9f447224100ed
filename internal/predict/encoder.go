// Package predict provides the learned congestion predictor: feature
// engineering, a bagged regression-tree ensemble, and model persistence.
package predict

import (
	"encoding/json"
	"sort"
)

// LabelEncoder maps categorical string values to dense integer codes. The
// code space grows to accommodate previously unseen categories at encode
// time instead of failing, so prediction inputs never need to match the
// training vocabulary exactly.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder creates an empty LabelEncoder.
func NewLabelEncoder() *LabelEncoder {
	return &LabelEncoder{index: make(map[string]int)}
}

// Fit resets the encoder to the sorted unique values of the input.
func (e *LabelEncoder) Fit(values []string) {
	seen := make(map[string]struct{}, len(values))
	e.classes = e.classes[:0]
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			e.classes = append(e.classes, v)
		}
	}
	sort.Strings(e.classes)

	e.index = make(map[string]int, len(e.classes))
	for i, v := range e.classes {
		e.index[v] = i
	}
}

// Encode returns the code for v, appending it as a new class on miss.
func (e *LabelEncoder) Encode(v string) int {
	if code, ok := e.index[v]; ok {
		return code
	}
	code := len(e.classes)
	e.classes = append(e.classes, v)
	e.index[v] = code
	return code
}

// Classes returns the known classes in code order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Len returns the number of known classes.
func (e *LabelEncoder) Len() int {
	return len(e.classes)
}

// MarshalJSON encodes the class list; codes are implied by position.
func (e *LabelEncoder) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.classes)
}

// UnmarshalJSON restores the class list and rebuilds the code index.
func (e *LabelEncoder) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &e.classes); err != nil {
		return err
	}
	e.index = make(map[string]int, len(e.classes))
	for i, v := range e.classes {
		e.index[v] = i
	}
	return nil
}
