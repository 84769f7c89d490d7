package main

import (
	"os"
	"strconv"
	"time"
)

// Config holds cmd/synthesize's environment-supplied defaults.
type Config struct {
	// POMDPMaxIterations caps the memory-refinement loop (default 3; see pomdp.Driver).
	POMDPMaxIterations int
	// StatusPeriod throttles Statistic's progress line (profiler.Statistic).
	StatusPeriod time.Duration
	// FSCSimTrials/FSCSimMaxSteps size the Monte-Carlo re-simulation run
	// after a POMDP synthesis (fsc.Simulate).
	FSCSimTrials int
	FSCSimMaxSteps int
	// RandomSeed seeds the re-simulator's sampling for reproducible runs.
	RandomSeed int64
}

// DefaultConfig returns quotientsynth's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
 POMDPMaxIterations: 3,
 StatusPeriod: 3 * time.Second,
 FSCSimTrials: 1000,
 FSCSimMaxSteps: 100,
 RandomSeed: 42,
	}
}

// LoadConfig starts from DefaultConfig and overrides fields present in
// the environment (QSYNTH_POMDP_MAX_ITERATIONS, QSYNTH_STATUS_PERIOD,
// QSYNTH_FSC_SIM_TRIALS, QSYNTH_FSC_SIM_MAX_STEPS, QSYNTH_RANDOM_SEED),
// meant to be populated from a.env file loaded by godotenv before this
// runs. Malformed values are ignored in favor of the default, since a
// bad.env entry should not crash the run.
func LoadConfig() *Config {
	c := DefaultConfig()
	if v, ok := lookupInt("QSYNTH_POMDP_MAX_ITERATIONS"); ok {
 c.POMDPMaxIterations = v
	}
	if v, ok := lookupDuration("QSYNTH_STATUS_PERIOD"); ok {
 c.StatusPeriod = v
	}
	if v, ok := lookupInt("QSYNTH_FSC_SIM_TRIALS"); ok {
 c.FSCSimTrials = v
	}
	if v, ok := lookupInt("QSYNTH_FSC_SIM_MAX_STEPS"); ok {
 c.FSCSimMaxSteps = v
	}
	if v, ok := lookupInt64("QSYNTH_RANDOM_SEED"); ok {
 c.RandomSeed = v
	}
	return c
}

func lookupInt(name string) (int, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
 return 0, false
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func lookupInt64(name string) (int64, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
 return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	return v, err == nil
}

func lookupDuration(name string) (time.Duration, bool) {
	raw, ok := os.LookupEnv(name)
	if !ok {
 return 0, false
	}
	v, err := time.ParseDuration(raw)
	return v, err == nil
}
