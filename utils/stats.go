package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one rendered generation. duration is the time spent since
// the previous frame, sleep included.
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// MarshalZerologObject lets a Stats be logged with Object("stats", s)
func (s *Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Int("generations", s.TotalGenerations).
		Int("population", s.Population).
		Float64("avg_population", s.AveragePopulation).
		Float64("gen_per_sec", s.GenerationsPerSecond).
		Dur("runtime", time.Since(s.StartTime))
}
