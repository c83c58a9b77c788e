package indicator

import (
	"sort"

	"signal-systemv1/internal/model"
)

type cluster struct {
	avg   float64
	count int
}

// Levels finds support and resistance by greedily clustering the high and
// low prices: points within the relative tolerance of an existing cluster
// average merge into it (updating the running average), otherwise they
// start a new cluster. The strongest cluster below the current price is
// support; the strongest at or above it is resistance.
//
// Sparse data falls back to the window extremes, then to ±0.5% of price,
// so support < close <= resistance holds only as a soft invariant.
func Levels(highs, lows []float64, price, tolerance float64) model.LevelsValue {
	fallback := model.LevelsValue{
		Support:    price * 0.995,
		Resistance: price * 1.005,
	}
	if len(highs) == 0 || len(lows) == 0 || price <= 0 {
		return fallback
	}

	points := make([]float64, 0, len(highs)+len(lows))
	points = append(points, highs...)
	points = append(points, lows...)
	sort.Float64s(points)

	var clusters []cluster
	for _, p := range points {
		best := -1
		bestDist := 0.0
		for i, c := range clusters {
			dist := p - c.avg
			if dist < 0 {
				dist = -dist
			}
			if c.avg > 0 && dist/c.avg <= tolerance && (best == -1 || dist < bestDist) {
				best = i
				bestDist = dist
			}
		}
		if best == -1 {
			clusters = append(clusters, cluster{avg: p, count: 1})
			continue
		}
		c := &clusters[best]
		c.avg = (c.avg*float64(c.count) + p) / float64(c.count+1)
		c.count++
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].count > clusters[j].count
	})

	support, resistance := 0.0, 0.0
	for _, c := range clusters {
		if c.avg < price && support == 0 {
			support = c.avg
		}
		if c.avg >= price && resistance == 0 {
			resistance = c.avg
		}
		if support != 0 && resistance != 0 {
			break
		}
	}

	if support == 0 {
		support = minOf(lows)
		if support >= price {
			support = fallback.Support
		}
	}
	if resistance == 0 {
		resistance = maxOf(highs)
		if resistance < price {
			resistance = fallback.Resistance
		}
	}

	return model.LevelsValue{Support: support, Resistance: resistance}
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
