package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"phong-renderer/internal/mathutil"
	"phong-renderer/internal/output"
	"phong-renderer/internal/raster"
)

// Job kinds.
const (
	KindSphere    = "sphere"
	KindNormalMap = "normal_map"
	KindTurntable = "turntable"
)

// Config holds all configurable paths, lights, jobs and render settings.
type Config struct {
	// Paths
	BaseDir      string `yaml:"base_dir"`
	NormalMapDir string `yaml:"normal_map_dir"`
	OutputDir    string `yaml:"output_dir"`

	// Render settings
	RenderSize  int    `yaml:"render_size"`
	Supersample int    `yaml:"supersample"`
	Format      string `yaml:"format"`
	Workers     int    `yaml:"workers"`

	Logging LoggingConfig    `yaml:"logging"`
	Lights  map[string]Light `yaml:"lights"`
	Jobs    []Job            `yaml:"jobs"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Light is the YAML form of raster.LightConfig.
type Light struct {
	View         [3]float64 `yaml:"view"`
	AmbientColor [3]uint8   `yaml:"ambient_color"`
	DirColor     [3]uint8   `yaml:"dir_color"`
	DirVec       [3]float64 `yaml:"dir_vec"`
	AReflect     [3]float64 `yaml:"areflect"`
	DReflect     [3]float64 `yaml:"dreflect"`
	SReflect     [3]float64 `yaml:"sreflect"`
	Shininess    float64    `yaml:"shininess,omitempty"`
}

// Job describes one render.
type Job struct {
	Name      string     `yaml:"name"`
	Kind      string     `yaml:"kind"`
	Light     string     `yaml:"light"`
	Tilt      [3]float64 `yaml:"tilt,omitempty"`       // model rotation in degrees around X, Y, Z
	NormalMap string     `yaml:"normal_map,omitempty"` // normal_map jobs only
	Frames    int        `yaml:"frames,omitempty"`     // turntable jobs only
}

// LightConfig converts the YAML light to the shading type.
func (l Light) LightConfig() raster.LightConfig {
	return raster.LightConfig{
		View:         mathutil.Vec3(l.View),
		AmbientColor: raster.RGB{R: l.AmbientColor[0], G: l.AmbientColor[1], B: l.AmbientColor[2]},
		DirColor:     raster.RGB{R: l.DirColor[0], G: l.DirColor[1], B: l.DirColor[2]},
		DirVec:       mathutil.Vec3(l.DirVec),
		AReflect:     mathutil.Vec3(l.AReflect),
		DReflect:     mathutil.Vec3(l.DReflect),
		SReflect:     mathutil.Vec3(l.SReflect),
		Shininess:    l.Shininess,
	}
}

// LightFrom is the inverse of Light.LightConfig.
func LightFrom(lc raster.LightConfig) Light {
	return Light{
		View:         lc.View,
		AmbientColor: [3]uint8{lc.AmbientColor.R, lc.AmbientColor.G, lc.AmbientColor.B},
		DirColor:     [3]uint8{lc.DirColor.R, lc.DirColor.G, lc.DirColor.B},
		DirVec:       lc.DirVec,
		AReflect:     lc.AReflect,
		DReflect:     lc.DReflect,
		SReflect:     lc.SReflect,
		Shininess:    lc.Shininess,
	}
}

// Default returns a config with one light ("test", equal to raster.TestLight)
// and one sphere job using it.
func Default() *Config {
	return &Config{
		OutputDir:   "renders",
		RenderSize:  256,
		Supersample: 2,
		Format:      "webp",
		Logging: LoggingConfig{
			Level: "info",
		},
		Lights: map[string]Light{
			"test": LightFrom(raster.TestLight),
		},
		Jobs: []Job{
			{Name: "sphere", Kind: KindSphere, Light: "test"},
		},
	}
}

// Load reads a YAML config file on top of Default().
// Fields not set in the file keep their default values; lights and jobs in
// the file replace the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	cfg.Lights = nil
	cfg.Jobs = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(cfg.Lights) == 0 {
		cfg.Lights = Default().Lights
	}
	if len(cfg.Jobs) == 0 {
		cfg.Jobs = Default().Jobs
	}

	return cfg, nil
}

// SaveTo writes the config as YAML, creating the parent directory if needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: mkdir %s: %w", filepath.Dir(path), err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	OutputDir string
	Format    string
	Size      int
	Workers   int
	LogLevel  string
}

// Resolve applies CLI overrides and fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.Logging.Level = flags.LogLevel
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.OutputDir != "" && !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
		if c.NormalMapDir != "" && !filepath.IsAbs(c.NormalMapDir) {
			c.NormalMapDir = filepath.Join(c.BaseDir, c.NormalMapDir)
		}
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks lights and jobs for consistency.
func (c *Config) Validate() error {
	if !output.Supported(c.Format) {
		return fmt.Errorf("config: unsupported format %q", c.Format)
	}

	names := make([]string, 0, len(c.Lights))
	for name := range c.Lights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.Lights[name].LightConfig().Validate(); err != nil {
			return fmt.Errorf("config: light %q: %w", name, err)
		}
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		if j.Name == "" {
			return fmt.Errorf("config: job %d: missing name", i)
		}
		if !validJobName(j.Name) {
			return fmt.Errorf("config: job %q: name must be a plain file name", j.Name)
		}
		if seen[j.Name] {
			return fmt.Errorf("config: job %q: duplicate name", j.Name)
		}
		seen[j.Name] = true

		if _, ok := c.Lights[j.Light]; !ok {
			return fmt.Errorf("config: job %q: unknown light %q", j.Name, j.Light)
		}
		switch j.Kind {
		case KindSphere:
		case KindNormalMap:
			if j.NormalMap == "" {
				return fmt.Errorf("config: job %q: normal_map job needs a normal_map", j.Name)
			}
		case KindTurntable:
			if j.Frames <= 0 {
				return fmt.Errorf("config: job %q: turntable needs frames > 0", j.Name)
			}
		default:
			return fmt.Errorf("config: job %q: unknown kind %q", j.Name, j.Kind)
		}
	}
	return nil
}

// validJobName reports whether name can be used as a single path element
// under the output directory.
func validJobName(name string) bool {
	if name == "." || name == ".." || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !filepath.IsAbs(name) && filepath.VolumeName(name) == ""
}
