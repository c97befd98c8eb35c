package rng

//go:generate mockgen -destination=mock/mock_roller.go -package=mockrng -source=roller.go

// Roller is the source of randomness for spawn rolls and ability offers.
// Injecting it keeps a run reproducible from its seed.
type Roller interface {
	// Float64 returns a value in [0, 1)
	Float64() float64

	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}
