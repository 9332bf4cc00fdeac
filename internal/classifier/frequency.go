package classifier

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

// FrequencyClassifier predicts the most frequent training label of each exact
// feature vector, falling back to the global majority for unseen vectors.
// Ties go to the lexically smallest label.
type FrequencyClassifier struct {
	mu       sync.RWMutex
	byVector map[string]string
	majority string
	fitted   bool
}

// NewFrequencyClassifier creates an unfitted classifier.
func NewFrequencyClassifier() *FrequencyClassifier {
	return &FrequencyClassifier{}
}

// Fit replaces any previous model.
func (c *FrequencyClassifier) Fit(_ context.Context, X [][]float64, y []string) error {
	if len(X) == 0 {
		return ErrEmptyDataset
	}
	if len(X) != len(y) {
		return ErrShapeMismatch
	}
	if err := checkShape(X); err != nil {
		return err
	}

	counts := make(map[string]map[string]int)
	global := make(map[string]int)
	for i, x := range X {
		key := vectorKey(x)
		if counts[key] == nil {
			counts[key] = make(map[string]int)
		}
		counts[key][y[i]]++
		global[y[i]]++
	}

	byVector := make(map[string]string, len(counts))
	for key, labels := range counts {
		byVector[key] = argmax(labels)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byVector = byVector
	c.majority = argmax(global)
	c.fitted = true
	return nil
}

// Predict returns a label per row.
func (c *FrequencyClassifier) Predict(_ context.Context, X [][]float64) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.fitted {
		return nil, ErrNotFitted
	}

	out := make([]string, len(X))
	for i, x := range X {
		label, ok := c.byVector[vectorKey(x)]
		if !ok {
			label = c.majority
		}
		out[i] = label
	}
	return out, nil
}

func argmax(counts map[string]int) string {
	var best string
	bestCount := -1
	for label, n := range counts {
		if n > bestCount || (n == bestCount && label < best) {
			best, bestCount = label, n
		}
	}
	return best
}

func vectorKey(x []float64) string {
	var b strings.Builder
	for i, v := range x {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

var _ Classifier = (*FrequencyClassifier)(nil)
