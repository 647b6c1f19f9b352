// Command shade prints the Phong terms and final color for one normal.
//
//	shade -normal 0,0,1
//	shade -config lights.yaml -light warm -normal 0.2,0.4,1 -strict
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"phong-renderer/internal/config"
	"phong-renderer/internal/mathutil"
	"phong-renderer/internal/raster"
)

func main() {
	configFile := flag.String("config", "", "Path to config.yaml with light presets (default: built-in test light)")
	lightName := flag.String("light", "test", "Light preset name")
	normalStr := flag.String("normal", "0,0,1", "Surface normal as x,y,z")
	strict := flag.Bool("strict", false, "Reject zero-length normals instead of shading them ambient-only")

	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	l, ok := cfg.Lights[*lightName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown light %q\n", *lightName)
		os.Exit(1)
	}
	lc := l.LightConfig()

	normal, err := parseVec3(*normalStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -normal: %v\n", err)
		os.Exit(1)
	}

	var c raster.RGB
	if *strict {
		c, err = lc.ColorFromNormChecked(normal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		c = lc.ColorFromNorm(normal)
	}

	t := lc.Terms(normal)
	fmt.Printf("ambient:  %6.2f %6.2f %6.2f\n", t.Ambient[0], t.Ambient[1], t.Ambient[2])
	fmt.Printf("diffuse:  %6.2f %6.2f %6.2f\n", t.Diffuse[0], t.Diffuse[1], t.Diffuse[2])
	fmt.Printf("specular: %6.2f %6.2f %6.2f\n", t.Specular[0], t.Specular[1], t.Specular[2])
	fmt.Printf("color:    %d %d %d (%s)\n", c.R, c.G, c.B, c)
}

func parseVec3(s string) (mathutil.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("want 3 comma-separated numbers, got %q", s)
	}
	var v mathutil.Vec3
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return mathutil.Vec3{}, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return v, nil
}
