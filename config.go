package main

import (
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

// Config collects the permutation parameters for one crtperm run.
type Config struct {
	N       uint64
	Seed    int64
	Key     string
	Rounds  int
	Inverse bool
	Start   uint64
	Count   uint64
	Snappy  bool
	Workers int
}

// parseINIConfig overlays the [permutation] section of an ini profile onto
// config. Keys present in the file override the current values; absent keys
// leave them untouched.
func parseINIConfig(config *Config, path string) error {
	iniOpt := ini.LoadOptions{
		Insensitive: true,
	}
	iniCfg, err := ini.LoadSources(iniOpt, path)
	if err != nil {
		return err
	}

	section, err := iniCfg.GetSection("permutation")
	if err != nil {
		return err
	}
	return section.MapTo(config)
}

// validate rejects parameter combinations the run loop cannot honor.
func (c *Config) validate() error {
	if c.N == 0 {
		return errors.New("n must be set to the domain size")
	}
	if c.Rounds < 1 {
		return errors.Errorf("rounds must be at least 1, got %d", c.Rounds)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Start > c.N {
		return errors.Errorf("start %d is past the end of the %d point sequence", c.Start, c.N)
	}
	return nil
}

// window returns the half-open position range [start, end) selected by the
// Start and Count settings, clamped to the sequence length.
func (c *Config) window() (uint64, uint64) {
	start, end := c.Start, c.N
	if c.Count != 0 {
		if span := end - start; c.Count < span {
			end = start + c.Count
		}
	}
	return start, end
}
