// Package config holds the tunable constants of the terrain engine and the
// loaders that populate them from maps, the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"biomes/pkg/biome"
	"biomes/pkg/noise"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "BIOMES_"

// Config holds the terrain, navigation and animation tunables.
type Config struct {
	TileSize    int
	NoiseScale  float64
	SeaLevel    float64
	Octaves     int
	Lacunarity  float64
	Persistence float64
	BoatSpeed   float64

	Noise string
	Seed  int64
	Ramp  string

	TrailFrames int
	TrailPeriod int
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		TileSize:    64,
		NoiseScale:  0.001,
		SeaLevel:    0.05,
		Octaves:     8,
		Lacunarity:  2.0,
		Persistence: 0.5,
		BoatSpeed:   4.0,
		Noise:       noise.DefaultSource,
		TrailFrames: 5,
		TrailPeriod: 10,
	}
}

// Keys lists the recognized option names.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Error reports an invalid configuration value.
type Error struct {
	Key    string
	Value  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("config: invalid %s %q: %s", e.Key, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

var setters = map[string]func(c *Config, v string) error{
	"tile_size":    func(c *Config, v string) error { return parseInt(v, &c.TileSize) },
	"noise_scale":  func(c *Config, v string) error { return parseFloat(v, &c.NoiseScale) },
	"sea_level":    func(c *Config, v string) error { return parseFloat(v, &c.SeaLevel) },
	"octaves":      func(c *Config, v string) error { return parseInt(v, &c.Octaves) },
	"lacunarity":   func(c *Config, v string) error { return parseFloat(v, &c.Lacunarity) },
	"persistence":  func(c *Config, v string) error { return parseFloat(v, &c.Persistence) },
	"boat_speed":   func(c *Config, v string) error { return parseFloat(v, &c.BoatSpeed) },
	"noise":        func(c *Config, v string) error { c.Noise = strings.TrimSpace(v); return nil },
	"seed":         func(c *Config, v string) error { return parseInt64(v, &c.Seed) },
	"ramp":         func(c *Config, v string) error { c.Ramp = v; return nil },
	"trail_frames": func(c *Config, v string) error { return parseInt(v, &c.TrailFrames) },
	"trail_period": func(c *Config, v string) error { return parseInt(v, &c.TrailPeriod) },
}

// Set assigns one option by key.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return &Error{Key: key, Value: value, Reason: "unknown option"}
	}
	if err := set(c, value); err != nil {
		return &Error{Key: key, Value: value, Reason: "cannot parse", Err: err}
	}
	return nil
}

// FromMap overlays the string map onto the defaults and validates the result.
func FromMap(m map[string]string) (Config, error) {
	c := Default()
	if err := c.Apply(m); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Apply overlays every entry of m. Keys are applied in sorted order so the
// first reported error is stable.
func (c *Config) Apply(m map[string]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.Set(k, m[k]); err != nil {
			return err
		}
	}
	return nil
}

// Load builds a configuration from defaults, an optional dotenv file and
// BIOMES_* environment variables. A missing env file is not an error. The
// result is not validated yet because flags may still override it.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", envFile, err)
		}
	}
	c := Default()
	if err := c.Apply(FromEnviron(os.Environ())); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FromEnviron extracts BIOMES_* entries from KEY=VALUE pairs as lower-case
// option keys.
func FromEnviron(environ []string) map[string]string {
	out := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, EnvPrefix) {
			continue
		}
		out[strings.ToLower(strings.TrimPrefix(k, EnvPrefix))] = v
	}
	return out
}

// Bind attaches the configuration to the provided FlagSet. Current values
// become the flag defaults, so call it after Load to let flags override the
// environment.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.TileSize, "tile-size", c.TileSize, "tile edge in world pixels")
	fs.Float64Var(&c.NoiseScale, "noise-scale", c.NoiseScale, "base frequency of the elevation noise")
	fs.Float64Var(&c.SeaLevel, "sea-level", c.SeaLevel, "elevation separating water from land")
	fs.IntVar(&c.Octaves, "octaves", c.Octaves, "fBm octave count")
	fs.Float64Var(&c.Lacunarity, "lacunarity", c.Lacunarity, "fBm frequency multiplier per octave")
	fs.Float64Var(&c.Persistence, "persistence", c.Persistence, "fBm amplitude multiplier per octave")
	fs.Float64Var(&c.BoatSpeed, "boat-speed", c.BoatSpeed, "boat displacement per tick in world pixels")
	fs.StringVar(&c.Noise, "noise", c.Noise, "noise source: "+strings.Join(noise.Names(), ", "))
	fs.Int64Var(&c.Seed, "seed", c.Seed, "noise seed (0 = reference permutation)")
	fs.StringVar(&c.Ramp, "ramp", c.Ramp, "custom colour ramp, at:#hex[:name],...")
	fs.IntVar(&c.TrailFrames, "trail-frames", c.TrailFrames, "number of wake animation frames")
	fs.IntVar(&c.TrailPeriod, "trail-period", c.TrailPeriod, "ticks per wake animation frame")
}

// MaxOctaves bounds the fBm layer count.
const MaxOctaves = 32

// Validate fails on values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.TileSize <= 0:
		return invalid("tile_size", c.TileSize, "must be positive")
	case !positive(c.NoiseScale):
		return invalid("noise_scale", c.NoiseScale, "must be a positive finite number")
	case math.IsNaN(c.SeaLevel) || c.SeaLevel < -1 || c.SeaLevel > 1:
		return invalid("sea_level", c.SeaLevel, "must be within [-1, 1]")
	case c.Octaves < 0 || c.Octaves > MaxOctaves:
		return invalid("octaves", c.Octaves, fmt.Sprintf("must be within [0, %d]", MaxOctaves))
	case !positive(c.Lacunarity):
		return invalid("lacunarity", c.Lacunarity, "must be a positive finite number")
	case !positive(c.Persistence):
		return invalid("persistence", c.Persistence, "must be a positive finite number")
	case !positive(c.BoatSpeed):
		return invalid("boat_speed", c.BoatSpeed, "must be a positive finite number")
	case c.BoatSpeed > float64(c.TileSize):
		return invalid("boat_speed", c.BoatSpeed, "must not exceed tile_size")
	case c.TrailFrames < 0:
		return invalid("trail_frames", c.TrailFrames, "must not be negative")
	case c.TrailPeriod <= 0:
		return invalid("trail_period", c.TrailPeriod, "must be positive")
	}
	if _, err := noise.New(c.Noise, c.Seed); err != nil {
		return &Error{Key: "noise", Value: c.Noise, Reason: "unknown source", Err: err}
	}
	if _, err := c.BuildRamp(); err != nil {
		return &Error{Key: "ramp", Value: c.Ramp, Reason: "cannot parse", Err: err}
	}
	return nil
}

// BuildRamp returns the configured colour ramp, or the default one.
func (c Config) BuildRamp() (*biome.Ramp, error) {
	if strings.TrimSpace(c.Ramp) == "" {
		return biome.DefaultRamp(), nil
	}
	return biome.ParseRamp(c.Ramp)
}

// Fractal returns the fBm parameters of the elevation field.
func (c Config) Fractal() noise.Fractal {
	return noise.Fractal{
		Scale:       c.NoiseScale,
		Octaves:     c.Octaves,
		Lacunarity:  c.Lacunarity,
		Persistence: c.Persistence,
	}
}

func invalid(key string, v any, reason string) error {
	return &Error{Key: key, Value: fmt.Sprint(v), Reason: reason}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseInt64(v string, dst *int64) error {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseFloat(v string, dst *float64) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}
