package predictor

import (
	"context"
	"math/rand/v2"
	"sync"
)

const maxRecommendations = 4

var baseRecommendations = []string{
	"Consider using drip irrigation for water efficiency",
	"Apply balanced NPK fertilizers based on soil test",
	"Monitor pest activity regularly during peak season",
	"Maintain optimal spacing between plants",
}

const (
	lowRainfallTip = "Increase irrigation frequency due to low rainfall"
	heatTip        = "Provide shade during extreme heat to reduce stress"
)

// RandomEstimator is the placeholder model: yield per acre is drawn from
// [2,5) and confidence from [75,90). It makes no claim to accuracy.
type RandomEstimator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomEstimator(src rand.Source) *RandomEstimator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &RandomEstimator{rnd: rand.New(src)}
}

func (e *RandomEstimator) Estimate(_ context.Context, in Input) (Result, error) {
	e.mu.Lock()
	base := e.rnd.Float64()*3 + 2
	confidence := 75 + e.rnd.IntN(15)
	e.mu.Unlock()

	return Result{
		Crop:            in.Crop,
		PredictedYield:  base * in.Area,
		ConfidenceLevel: confidence,
		Recommendations: Recommend(in),
	}, nil
}

// Recommend assembles the advice list: the fixed pool, then the rainfall and
// heat tips when they apply, capped at four entries.
func Recommend(in Input) []string {
	recs := append([]string{}, baseRecommendations...)
	if in.Rainfall < 30 {
		recs = append(recs, lowRainfallTip)
	}
	if in.Temperature > 85 {
		recs = append(recs, heatTip)
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}
