package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"flycam/internal/util"
	"flycam/pkg/assets"
	"flycam/pkg/controls"
)

// Config represents the main configuration
type Config struct {
	Window   WindowConfig      `yaml:"window"`
	Camera   CameraConfig      `yaml:"camera"`
	Scene    SceneConfig       `yaml:"scene"`
	Controls map[string]string `yaml:"controls"` // movement name -> key name overrides
	Logging  LoggingConfig     `yaml:"logging"`
}

// WindowConfig contains window and frame pacing configuration
type WindowConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Title      string     `yaml:"title"`
	VSync      bool       `yaml:"vsync"`
	FrameRate  int        `yaml:"framerate"` // 0 disables the cap
	ClearColor [4]float32 `yaml:"clear_color"`
}

// CameraConfig contains the initial camera pose and its tuning
type CameraConfig struct {
	Position         [3]float32 `yaml:"position"`
	Target           [3]float32 `yaml:"target"`
	MovementSpeed    float32    `yaml:"movement_speed"`
	RotationRate     float32    `yaml:"rotation_rate"`
	MouseLook        bool       `yaml:"mouse_look"`
	MouseSensitivity float32    `yaml:"mouse_sensitivity"`
	Renormalize      bool       `yaml:"renormalize"`
	MaxFrameDelta    float32    `yaml:"max_frame_delta"`
}

// SceneConfig contains what is drawn and how it is projected
type SceneConfig struct {
	Mesh           string     `yaml:"mesh"`             // pyramid, rectangle
	Texture        string     `yaml:"texture"`
	FlipTexture    bool       `yaml:"flip_texture"`
	VertexShader   string     `yaml:"vertex_shader"`    // empty uses the built-in shader
	FragmentShader string     `yaml:"fragment_shader"`  // empty uses the built-in shader
	ModelPosition  [3]float32 `yaml:"model_position"`
	ModelRotationY float32    `yaml:"model_rotation_y"` // degrees
	FieldOfView    float32    `yaml:"fov"`              // degrees
	Near           float32    `yaml:"near"`
	Far            float32    `yaml:"far"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level   string `yaml:"level"`
	File    string `yaml:"file"`    // optional
	Console bool   `yaml:"console"` // with a file set, false logs to the file only
	Colors  bool   `yaml:"colors"`  // ANSI colours when the console is a terminal
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      800,
			Height:     600,
			Title:      "LearnOpenGL",
			VSync:      true,
			FrameRate:  0,
			ClearColor: [4]float32{0.93, 0.5, 0.93, 1.0},
		},
		Camera: CameraConfig{
			Position:         [3]float32{3, 3, 3},
			Target:           [3]float32{0, 0, 0},
			MovementSpeed:    2.5,
			RotationRate:     0.5,
			MouseLook:        false,
			MouseSensitivity: 0.002,
			Renormalize:      false,
			MaxFrameDelta:    controls.DefaultMaxDelta,
		},
		Scene: SceneConfig{
			Mesh:           "pyramid",
			Texture:        "Obamium.jpg",
			FlipTexture:    true,
			ModelPosition:  [3]float32{1, 0, -3},
			ModelRotationY: 25,
			FieldOfView:    45,
			Near:           0.1,
			Far:            100,
		},
		Controls: map[string]string{},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Colors:  true,
		},
	}
}

// LoadConfig loads the configuration from a file on top of the defaults.
// The defaults are returned alongside any error.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("error reading config %s: %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config %s: %w", filePath, err)
	}

	return config, nil
}

// LoadConfigIfExists loads filePath when it exists. A missing file is not an error:
// the defaults are returned with found set to false.
func LoadConfigIfExists(filePath string) (config *Config, found bool, err error) {
	if !util.FileExists(filePath) {
		return DefaultConfig(), false, nil
	}
	config, err = LoadConfig(filePath)
	return config, true, err
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate reports every setting that would prevent the viewer from starting
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FrameRate < 0 {
		errs = append(errs, fmt.Errorf("framerate %d must not be negative", c.Window.FrameRate))
	}

	if c.Camera.Position == c.Camera.Target {
		errs = append(errs, fmt.Errorf("camera position and target are both %v", c.Camera.Position))
	}
	if c.Camera.MovementSpeed < 0 || c.Camera.RotationRate < 0 {
		errs = append(errs, errors.New("camera speeds must not be negative"))
	}

	if _, err := assets.MeshByName(c.Scene.Mesh); err != nil {
		errs = append(errs, err)
	}
	if c.Scene.FieldOfView <= 0 || c.Scene.FieldOfView >= 180 {
		errs = append(errs, fmt.Errorf("fov %.1f must be within (0, 180)", c.Scene.FieldOfView))
	}
	if c.Scene.Near <= 0 || c.Scene.Far <= c.Scene.Near {
		errs = append(errs, fmt.Errorf("clip planes near=%g far=%g are invalid", c.Scene.Near, c.Scene.Far))
	}

	if _, err := controls.ParseBindings(c.Controls); err != nil {
		errs = append(errs, err)
	}

	if !c.Logging.Console && c.Logging.File == "" {
		errs = append(errs, errors.New("logging needs the console or a file"))
	}

	return errors.Join(errs...)
}
