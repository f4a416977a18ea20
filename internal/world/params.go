package world

import (
	"strconv"

	"biomes/internal/core"
)

// Parameters reports the boat readout and the current tunables.
func (w *World) Parameters() core.ParameterSnapshot {
	x, y := w.boat.Position()
	cols, rows := w.grid.Dims()
	groups := []core.ParameterGroup{
		{
			Name: "Boat",
			Params: []core.Parameter{
				floatParam("x", "X", x),
				floatParam("y", "Y", y),
				textParam("state", "State", w.boat.State().String()),
				floatParam("heading", "Heading", w.boat.Heading()),
				textParam("band", "Biome", w.Band()),
				floatParam("elevation", "Elevation", w.boat.Elevation()),
				floatParam("boat_speed", "Boat speed", w.cfg.BoatSpeed),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				textParam("noise", "Noise", w.cfg.Noise),
				int64Param("seed", "Seed", w.cfg.Seed),
				floatParam("sea_level", "Sea level", w.cfg.SeaLevel),
				floatParam("noise_scale", "Noise scale", w.cfg.NoiseScale),
				intParam("octaves", "Octaves", w.cfg.Octaves),
				floatParam("persistence", "Persistence", w.cfg.Persistence),
				floatParam("lacunarity", "Lacunarity", w.cfg.Lacunarity),
			},
		},
		{
			Name: "Tiles",
			Params: []core.Parameter{
				intParam("tile_size", "Tile size", w.cfg.TileSize),
				intParam("cols", "Columns", cols),
				intParam("rows", "Rows", rows),
				textParam("regenerated", "Renders", strconv.FormatUint(w.grid.Regenerated(), 10)),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values the HUD may adjust.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "sea_level", Label: "Sea level", Type: core.ParamTypeFloat, Step: 0.05, Min: -1, Max: 1, HasMin: true, HasMax: true},
		{Key: "boat_speed", Label: "Boat speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0.5, Max: 32, HasMin: true, HasMax: true},
		{Key: "noise_scale", Label: "Noise scale", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0.0005, Max: 0.05, HasMin: true, HasMax: true},
		{Key: "octaves", Label: "Octaves", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 16, HasMin: true, HasMax: true},
		{Key: "persistence", Label: "Persistence", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
		{Key: "lacunarity", Label: "Lacunarity", Type: core.ParamTypeFloat, Step: 0.1, Min: 1, Max: 4, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable. It returns false for unknown
// keys and values the configuration rejects.
func (w *World) SetFloatParameter(key string, value float64) bool {
	next := w.cfg
	switch key {
	case "sea_level":
		next.SeaLevel = value
	case "boat_speed":
		next.BoatSpeed = value
	case "noise_scale":
		next.NoiseScale = value
	case "persistence":
		next.Persistence = value
	case "lacunarity":
		next.Lacunarity = value
	default:
		return false
	}
	return w.reconfigure(key, next)
}

// SetIntParameter updates an integer tunable.
func (w *World) SetIntParameter(key string, value int) bool {
	next := w.cfg
	switch key {
	case "octaves":
		next.Octaves = value
	case "seed":
		next.Seed = int64(value)
	default:
		return false
	}
	return w.reconfigure(key, next)
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func textParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeText, Value: value}
}
