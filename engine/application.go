package engine

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/davsar89/GDML-Studio/engine/core"
	"github.com/davsar89/GDML-Studio/engine/math"
	"github.com/davsar89/GDML-Studio/engine/renderer/components"
)

// DefaultConfigFile is looked up in the working directory when no config
// path is given.
const DefaultConfigFile = "gdmlstudio.toml"

type CameraConfig struct {
	// Vertical field of view in degrees.
	FOV      float32    `toml:"fov"`
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
	// Seconds an animated orbit step takes; 0 disables easing.
	OrbitDuration float32 `toml:"orbit_duration"`
}

type ApplicationConfig struct {
	// The application name, shown in the title bar.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	// Where logs go while the terminal UI owns the screen. Empty discards them.
	LogFile string `toml:"log_file"`
	// Raster size in dots before the first resize.
	StartWidth  uint32 `toml:"start_width"`
	StartHeight uint32 `toml:"start_height"`
	// Global opacity on start, in [0, 1].
	Opacity float32 `toml:"opacity"`
	// Reload the document when its file changes.
	Watch      bool         `toml:"watch"`
	JobWorkers int          `toml:"job_workers"`
	Camera     CameraConfig `toml:"camera"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        "GDML Studio",
		LogLevel:    "info",
		LogFile:     "gdmlstudio.log",
		StartWidth:  160,
		StartHeight: 96,
		Opacity:     1.0,
		Watch:       true,
		JobWorkers:  1,
		Camera: CameraConfig{
			FOV:           components.DefaultFOV,
			Near:          components.DefaultNear,
			Far:           components.DefaultFar,
			Position:      [3]float32{500, 500, 500},
			OrbitDuration: 0.25,
		},
	}
}

/**
 * @brief Loads the TOML config at path over the defaults. A missing file
 * yields the defaults.
 */
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			core.LogDebug("no config at %s, using defaults", path)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.Opacity < 0 || c.Opacity > 1 {
		return core.ErrInvalidOpacity
	}
	if c.JobWorkers < 1 {
		return fmt.Errorf("job_workers must be at least 1, got %d", c.JobWorkers)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip planes must satisfy 0 < near < far")
	}
	return nil
}

func (c *ApplicationConfig) cameraPosition() math.Vec3 {
	return math.NewVec3(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2])
}
