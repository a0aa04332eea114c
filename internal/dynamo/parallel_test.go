package dynamo

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestParallelFor(t *testing.T) {
	tests := []struct {
		name     string
		n, chunk int
	}{
		{"serial", 10, 100},
		{"chunked", 10000, 16},
		{"uneven", 1001, 7},
		{"empty", 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := make([]int32, tt.n)
			err := ParallelFor(context.Background(), tt.n, tt.chunk, func(start, end int) error {
				for i := start; i < end; i++ {
					atomic.AddInt32(&seen[i], 1)
				}
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
			for i, c := range seen {
				if c != 1 {
					t.Fatalf("index %d visited %d times", i, c)
				}
			}
		})
	}
}

func TestParallelForError(t *testing.T) {
	boom := errors.New("boom")
	err := ParallelFor(context.Background(), 1000, 10, func(start, end int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestRunAll(t *testing.T) {
	rates := []float64{0.5, 1, 2}
	jobs := make([]Job, len(rates))
	for i, r := range rates {
		jobs[i] = Job{Sim: New(&decay{rate: r}, euler{}), X0: State{1}, Cfg: Config{Dt: 1e-3, Duration: 1}}
	}

	results, err := RunAll(context.Background(), jobs, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range rates {
		final, _ := results[i].Final()
		if want := math.Exp(-r); math.Abs(final[0]-want) > 2e-3 {
			t.Errorf("rate %g: got %g, want ~%g", r, final[0], want)
		}
	}

	jobs = append(jobs, Job{Sim: New(&decay{rate: 1}, euler{}), X0: State{1}, Cfg: Config{}})
	if _, err := RunAll(context.Background(), jobs, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
