package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFixedTimeStep  = 1.0 / 60.0
	DefaultMaxSubSteps    = 3
	DefaultGravityY       = -9.82
	DefaultFriction       = 0.1
	DefaultRestitution    = 0.1
	DefaultBoxMass        = 0.2
	DefaultSphereMass     = 1.0
	DefaultDropHeight     = 3.0
	DefaultImpactVelocity = 1.5
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Physics PhysicsConfig `yaml:"physics"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Impact  ImpactConfig  `yaml:"impact"`
	Kick    KickConfig    `yaml:"kick"`
	Camera  CameraConfig  `yaml:"camera"`
	Light   LightConfig   `yaml:"light"`
	Log     LogConfig     `yaml:"log"`
}

type WindowConfig struct {
	Width      int32   `yaml:"width"`
	Height     int32   `yaml:"height"`
	Title      string  `yaml:"title"`
	TargetFPS  int32   `yaml:"target_fps"`
	Background uint32  `yaml:"background"`
	FloorColor uint32  `yaml:"floor_color"`
	FloorSize  float32 `yaml:"floor_size"`
	AxesLength float32 `yaml:"axes_length"`
}

type PhysicsConfig struct {
	Gravity          Vec3    `yaml:"gravity"`
	Broadphase       string  `yaml:"broadphase"`
	FixedTimeStep    float32 `yaml:"fixed_time_step"`
	MaxSubSteps      int     `yaml:"max_sub_steps"`
	SolverIterations int     `yaml:"solver_iterations"`
	Friction         float32 `yaml:"friction"`
	Restitution      float32 `yaml:"restitution"`
	AllowSleep       bool    `yaml:"allow_sleep"`
}

type SpawnConfig struct {
	BoxMass    float32 `yaml:"box_mass"`
	SphereMass float32 `yaml:"sphere_mass"`
	DropHeight float32 `yaml:"drop_height"`
	// Spread is the full width of the random x/z drop area
	Spread      float32 `yaml:"spread"`
	GridColumns int     `yaml:"grid_columns"`
	GridRows    int     `yaml:"grid_rows"`
	Metalness   float32 `yaml:"metalness"`
	Roughness   float32 `yaml:"roughness"`
}

type ImpactConfig struct {
	Threshold float32 `yaml:"threshold"`
	Sound     string  `yaml:"sound"`
	Volume    float32 `yaml:"volume"`
}

// KickConfig pushes the sphere. Mode "force" applies Force for one physics
// step; "impulse" applies Force*fixed_time_step as an instant impulse.
type KickConfig struct {
	Mode  string `yaml:"mode"`
	Force Vec3   `yaml:"force"`
	Point Vec3   `yaml:"point"`
}

// LightConfig is one white-ish directional light shining from Position
// towards the origin, plus a flat ambient term.
type LightConfig struct {
	Position  Vec3    `yaml:"position"`
	Color     uint32  `yaml:"color"`
	Intensity float32 `yaml:"intensity"`
	Ambient   float32 `yaml:"ambient"`
	Shadows   bool    `yaml:"shadows"`
}

type CameraConfig struct {
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
	Fovy     float32 `yaml:"fovy"`
	Damping  float32 `yaml:"damping"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// Vec3 is a yaml friendly [x, y, z] triple
type Vec3 [3]float32

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Title:      "Physics Playground",
			TargetFPS:  60,
			Background: 0x13678A,
			FloorColor: 0x012030,
			FloorSize:  1000,
			AxesLength: 5,
		},
		Physics: PhysicsConfig{
			Gravity:          Vec3{0, DefaultGravityY, 0},
			Broadphase:       "sap",
			FixedTimeStep:    DefaultFixedTimeStep,
			MaxSubSteps:      DefaultMaxSubSteps,
			SolverIterations: 10,
			Friction:         DefaultFriction,
			Restitution:      DefaultRestitution,
			AllowSleep:       true,
		},
		Spawn: SpawnConfig{
			BoxMass:     DefaultBoxMass,
			SphereMass:  DefaultSphereMass,
			DropHeight:  DefaultDropHeight,
			Spread:      2,
			GridColumns: 10,
			GridRows:    3,
			Metalness:   0.3,
			Roughness:   0.4,
		},
		Impact: ImpactConfig{
			Threshold: DefaultImpactVelocity,
			Sound:     "assets/sounds/hit.mp3",
			Volume:    1,
		},
		Kick: KickConfig{
			Mode:  "force",
			Force: Vec3{0, 500, -1000},
		},
		Camera: CameraConfig{
			Position: Vec3{-8, 8, 8},
			Fovy:     75,
			Damping:  0.05,
		},
		Light: LightConfig{
			Position:  Vec3{5, 5, 5},
			Color:     0xFFFFFF,
			Intensity: 0.6,
			Ambient:   0.67,
			Shadows:   true,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load overlays the file at path on top of Default
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Physics.FixedTimeStep <= 0:
		return fmt.Errorf("%w: physics.fixed_time_step must be positive", ErrInvalid)
	case c.Physics.MaxSubSteps < 1:
		return fmt.Errorf("%w: physics.max_sub_steps must be at least 1", ErrInvalid)
	case c.Physics.SolverIterations < 1:
		return fmt.Errorf("%w: physics.solver_iterations must be at least 1", ErrInvalid)
	case c.Physics.Broadphase != "sap" && c.Physics.Broadphase != "grid" && c.Physics.Broadphase != "gpu":
		return fmt.Errorf("%w: unknown physics.broadphase %q", ErrInvalid, c.Physics.Broadphase)
	case c.Physics.Friction < 0 || c.Physics.Restitution < 0:
		return fmt.Errorf("%w: physics friction and restitution must not be negative", ErrInvalid)
	case c.Spawn.BoxMass <= 0 || c.Spawn.SphereMass <= 0:
		return fmt.Errorf("%w: spawn masses must be positive", ErrInvalid)
	case c.Spawn.GridColumns < 0 || c.Spawn.GridRows < 0:
		return fmt.Errorf("%w: spawn grid must not be negative", ErrInvalid)
	case c.Impact.Threshold < 0:
		return fmt.Errorf("%w: impact.threshold must not be negative", ErrInvalid)
	case c.Kick.Mode != "force" && c.Kick.Mode != "impulse":
		return fmt.Errorf("%w: kick.mode must be force or impulse", ErrInvalid)
	case c.Light.Intensity < 0 || c.Light.Ambient < 0:
		return fmt.Errorf("%w: light intensity and ambient must not be negative", ErrInvalid)
	case c.Light.Position == Vec3{}:
		return fmt.Errorf("%w: light.position must not be the origin", ErrInvalid)
	case c.Camera.Damping < 0 || c.Camera.Damping > 1:
		return fmt.Errorf("%w: camera.damping must be within [0, 1]", ErrInvalid)
	case c.Log.Encoding != "console" && c.Log.Encoding != "json":
		return fmt.Errorf("%w: log.encoding must be console or json", ErrInvalid)
	}
	return nil
}
