package workload

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily_CaseInsensitive(t *testing.T) {
	tests := []struct {
		in   string
		want Family
	}{
		{"normal", FamilyNormal},
		{"Normal", FamilyNormal},
		{" EXPONENTIAL ", FamilyExponential},
		{"Uniform", FamilyUniform},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFamily(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFamily_Unknown_ReturnsError(t *testing.T) {
	_, err := ParseFamily("gamma")
	assert.Error(t, err)
}

func TestDistSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    DistSpec
		wantErr bool
	}{
		{"normal ok", DistSpec{FamilyNormal, 10, 4}, false},
		{"normal zero variance ok", DistSpec{FamilyNormal, 10, 0}, false},
		{"normal negative variance", DistSpec{FamilyNormal, 10, -1}, true},
		{"exponential ok", DistSpec{FamilyExponential, 3, 0}, false},
		{"exponential zero mean", DistSpec{FamilyExponential, 0, 0}, true},
		{"exponential negative mean", DistSpec{FamilyExponential, -2, 0}, true},
		{"uniform ok", DistSpec{FamilyUniform, 1, 2}, false},
		{"uniform equal bounds", DistSpec{FamilyUniform, 2, 2}, true},
		{"uniform inverted", DistSpec{FamilyUniform, 3, 2}, true},
		{"unknown family", DistSpec{"weibull", 1, 2}, true},
		{"nan param", DistSpec{FamilyNormal, math.NaN(), 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalSampler_MeanMatchesParam(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewSampler(DistSpec{Family: FamilyNormal, Param1: 20, Param2: 16})
	require.NoError(t, err)
	n := 20000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v := s.Sample(rng)
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	assert.InDelta(t, 20, mean, 0.2)
	assert.InDelta(t, 16, variance, 0.8)
}

func TestExponentialSampler_MeanMatchesParam(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewSampler(DistSpec{Family: FamilyExponential, Param1: 8})
	require.NoError(t, err)
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}
	mean := sum / float64(n)
	if math.Abs(mean-8)/8 > 0.05 {
		t.Errorf("exponential mean = %.3f, want ≈ 8 (within 5%%)", mean)
	}
}

func TestUniformSampler_StaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s, err := NewSampler(DistSpec{Family: FamilyUniform, Param1: 5, Param2: 9})
	require.NoError(t, err)
	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 5 || v > 9 {
			t.Fatalf("sample %d: %v outside [5, 9]", i, v)
		}
	}
}

func TestServiceSampler_NegativeDrawsFlooredAtZero(t *testing.T) {
	// GIVEN a normal whose mass is mostly below zero
	rng := rand.New(rand.NewSource(1))
	s, err := NewServiceSampler(DistSpec{Family: FamilyNormal, Param1: -5, Param2: 1})
	require.NoError(t, err)

	// WHEN sampling repeatedly
	zeros := 0
	for i := 0; i < 1000; i++ {
		v := s.Sample(rng)
		// THEN no draw is negative
		if v < 0 {
			t.Fatalf("sample %d: got %v, want >= 0", i, v)
		}
		if v == 0 {
			zeros++
		}
	}
	assert.Greater(t, zeros, 990)
}

func TestNewSampler_InvalidSpec_ReturnsError(t *testing.T) {
	_, err := NewSampler(DistSpec{Family: FamilyUniform, Param1: 4, Param2: 1})
	assert.Error(t, err)
	_, err = NewServiceSampler(DistSpec{Family: "triangular"})
	assert.Error(t, err)
}
