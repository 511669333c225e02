package config

import (
	"fmt"

	"github.com/san-kum/freefall/internal/dynamo"
)

type WorldPreset struct {
	Name        string
	Description string
	Gravity     float64
	Drag        float64
}

type BallPreset struct {
	Name        string
	Description string
	Mass        float64
}

// Worlds and Balls are kept in display order; the live view cycles
// through them in this order.
var Worlds = []WorldPreset{
	{Name: "ideal", Description: "vacuum, no air resistance", Gravity: 9.81, Drag: 0},
	{Name: "breeze", Description: "earth gravity, light air", Gravity: 9.81, Drag: 0.5},
	{Name: "high-drag", Description: "earth gravity, thick air", Gravity: 9.81, Drag: 2.0},
	{Name: "low-gravity", Description: "weak pull, some air", Gravity: 6.0, Drag: 0.6},
	{Name: "high-gravity", Description: "strong pull, thin air", Gravity: 15.0, Drag: 0.3},
}

var Balls = []BallPreset{
	{Name: "light", Description: "table tennis ball", Mass: 0.2},
	{Name: "standard", Description: "football", Mass: 1.0},
	{Name: "heavy", Description: "bowling ball", Mass: 5.0},
}

func GetWorld(name string) (WorldPreset, error) {
	for _, w := range Worlds {
		if w.Name == name {
			return w, nil
		}
	}
	return WorldPreset{}, fmt.Errorf("world %q: %w", name, dynamo.ErrUnknownPreset)
}

func GetBall(name string) (BallPreset, error) {
	for _, b := range Balls {
		if b.Name == name {
			return b, nil
		}
	}
	return BallPreset{}, fmt.Errorf("ball %q: %w", name, dynamo.ErrUnknownPreset)
}

func ListWorlds() []string {
	names := make([]string, 0, len(Worlds))
	for _, w := range Worlds {
		names = append(names, w.Name)
	}
	return names
}

func ListBalls() []string {
	names := make([]string, 0, len(Balls))
	for _, b := range Balls {
		names = append(names, b.Name)
	}
	return names
}

// NextWorld returns the preset after name, wrapping around. An unknown
// name yields the first preset.
func NextWorld(name string) WorldPreset {
	for i, w := range Worlds {
		if w.Name == name {
			return Worlds[(i+1)%len(Worlds)]
		}
	}
	return Worlds[0]
}

func NextBall(name string) BallPreset {
	for i, b := range Balls {
		if b.Name == name {
			return Balls[(i+1)%len(Balls)]
		}
	}
	return Balls[0]
}
