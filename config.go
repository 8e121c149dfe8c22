package stabiliser

import "runtime"

/*
Config tunes the Reconstructor. It only changes how the work is scheduled;
the amplitudes come out the same for any setting.
*/
type Config struct {
	// Workers bounds the goroutines used for one reconstruction.
	Workers int `yaml:"workers"`

	// ParallelThreshold is the smallest subset count (2^k) worth splitting.
	ParallelThreshold int `yaml:"parallel_threshold"`

	// ChunkSize is the number of subsets one goroutine handles at a time.
	ChunkSize int `yaml:"chunk_size"`
}

func NewConfig() *Config {
	return &Config{
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: 1 << 12,
		ChunkSize:         1 << 10,
	}
}

// withDefaults fills zero fields so a partially written config still works.
func (c *Config) withDefaults() *Config {
	defaults := NewConfig()
	if c == nil {
		return defaults
	}

	out := *c
	if out.Workers <= 0 {
		out.Workers = defaults.Workers
	}
	if out.ParallelThreshold <= 0 {
		out.ParallelThreshold = defaults.ParallelThreshold
	}
	if out.ChunkSize <= 0 {
		out.ChunkSize = defaults.ChunkSize
	}

	return &out
}
