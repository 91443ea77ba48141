// Package config loads and saves scene run configurations, mirroring the
// teacher's internal/config package: a YAML-tagged struct with a nested
// preset table, Load/Save over os.ReadFile/yaml.Unmarshal and
// yaml.Marshal/os.WriteFile.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 0.016
	DefaultDuration   = 10.0
	DefaultNIteration = 20
	DefaultMass       = 1.0
)

// Config selects a scene and its tunables for one simulation run.
type Config struct {
	Scene       string      `yaml:"scene"`
	Dt          float64     `yaml:"dt"`
	Duration    float64     `yaml:"duration"`
	Seed        int64       `yaml:"seed"`
	NIteration  int         `yaml:"n_iteration"`
	Substeps    bool        `yaml:"substeps"`
	DefaultMass float64     `yaml:"default_mass"`
	Scenes      SceneParams `yaml:"scenes"`
}

// SceneParams holds the tunables of every scene descriptor. Only the block
// matching Config.Scene is read by cmd/xpbd; the rest is carried so a single
// preset file can be diffed cleanly against another regardless of which
// scene it targets.
type SceneParams struct {
	Cord      CordParams      `yaml:"cord"`
	Cloth     ClothParams     `yaml:"cloth"`
	ClothDrop ClothDropParams `yaml:"cloth_drop"`
	ClothTurn ClothTurnParams `yaml:"cloth_turn"`
	Spheres   SpheresParams   `yaml:"spheres"`
	SoftBody  SoftBodyParams  `yaml:"soft_body"`
	SoftBall  SoftBallParams  `yaml:"soft_ball"`
	RigidBody RigidBodyParams `yaml:"rigid_body"`
	Fluid     FluidParams     `yaml:"fluid"`
}

type CordParams struct {
	NParticles int     `yaml:"n_particles"`
	Distance   float64 `yaml:"distance"`
}

type ClothParams struct {
	W             int     `yaml:"w"`
	H             int     `yaml:"h"`
	Distance      float64 `yaml:"distance"`
	Bending       bool    `yaml:"bending"`
	SelfCollision bool    `yaml:"self_collision"`
	SpawnVertical bool    `yaml:"spawn_vertical"`
}

type ClothDropParams struct {
	W int `yaml:"w"`
}

type ClothTurnParams struct {
	W                int     `yaml:"w"`
	CylinderSpacing  float64 `yaml:"cylinder_spacing"`
	CylinderAngleDeg float64 `yaml:"cylinder_angle_deg"`
}

type SpheresParams struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
}

type SoftBodyParams struct {
	Radius float64 `yaml:"radius"`
}

type SoftBallParams struct {
	Pressure  float64 `yaml:"pressure"`
	MeshIndex int     `yaml:"mesh_index"`
}

type RigidBodyParams struct {
	Resolution float64 `yaml:"resolution"`
	Subdiv     int     `yaml:"subdiv"`
}

type FluidParams struct {
	Nx int `yaml:"nx"`
	Ny int `yaml:"ny"`
	Nz int `yaml:"nz"`
}

// DefaultConfig returns the baseline Cord scene configuration.
func DefaultConfig() *Config {
	return &Config{
		Scene:       "cord",
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		NIteration:  DefaultNIteration,
		DefaultMass: DefaultMass,
		Scenes: SceneParams{
			Cord: CordParams{NParticles: 10, Distance: 0.5},
		},
	}
}

// Load reads and parses a YAML config file, starting from DefaultConfig so
// unset fields keep sane values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save serializes cfg to YAML and writes it to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
