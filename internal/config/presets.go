package config

// Presets maps scene name to named tunable variants, mirroring the
// teacher's nested preset table shape exactly (model -> variant -> Config).
var Presets = map[string]map[string]*Config{
	"cord": {
		"short": {
			Scene: "cord", Dt: 0.016, Duration: 10.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{Cord: CordParams{NParticles: 10, Distance: 0.5}},
		},
		"long": {
			Scene: "cord", Dt: 0.016, Duration: 15.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{Cord: CordParams{NParticles: 30, Distance: 0.3}},
		},
	},
	"cloth": {
		"drape": {
			Scene: "cloth", Dt: 0.016, Duration: 10.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{Cloth: ClothParams{W: 16, H: 16, Distance: 0.1, Bending: true}},
		},
		"flag": {
			Scene: "cloth", Dt: 0.016, Duration: 10.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{Cloth: ClothParams{W: 20, H: 12, Distance: 0.08, Bending: true, SpawnVertical: true}},
		},
		"self-collide": {
			Scene: "cloth", Dt: 0.016, Duration: 10.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{Cloth: ClothParams{W: 12, H: 12, Distance: 0.1, Bending: true, SelfCollision: true}},
		},
	},
	"clothdrop": {
		"onto-sphere": {
			Scene: "clothdrop", Dt: 0.016, Duration: 8.0, NIteration: 10, DefaultMass: 0.01, Substeps: true,
			Scenes: SceneParams{ClothDrop: ClothDropParams{W: 20}},
		},
	},
	"clothturn": {
		"rollers": {
			Scene: "clothturn", Dt: 0.016, Duration: 20.0, NIteration: 10, DefaultMass: 0.01, Substeps: true,
			Scenes: SceneParams{ClothTurn: ClothTurnParams{W: 16, CylinderSpacing: 0.5, CylinderAngleDeg: 0}},
		},
	},
	"spheres": {
		"pile": {
			Scene: "spheres", Dt: 0.016, Duration: 8.0, NIteration: 10, DefaultMass: 1.0, Substeps: true,
			Scenes: SceneParams{Spheres: SpheresParams{Count: 50, Radius: 0.1}},
		},
		"dense": {
			Scene: "spheres", Dt: 0.016, Duration: 10.0, NIteration: 10, DefaultMass: 1.0, Substeps: true,
			Scenes: SceneParams{Spheres: SpheresParams{Count: 200, Radius: 0.06}},
		},
	},
	"softbody": {
		"blob": {
			Scene: "softbody", Dt: 0.016, Duration: 8.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{SoftBody: SoftBodyParams{Radius: 1.0}},
		},
	},
	"softball": {
		"inflate": {
			Scene: "softball", Dt: 0.016, Duration: 8.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{SoftBall: SoftBallParams{Pressure: 2.0}},
		},
		"deflated": {
			Scene: "softball", Dt: 0.016, Duration: 8.0, NIteration: 20, DefaultMass: 1.0,
			Scenes: SceneParams{SoftBall: SoftBallParams{Pressure: 0.6}},
		},
	},
	"rigidbody": {
		"drop": {
			Scene: "rigidbody", Dt: 0.016, Duration: 8.0, NIteration: 10, DefaultMass: 1.0, Substeps: true,
			Scenes: SceneParams{RigidBody: RigidBodyParams{Resolution: 0.5, Subdiv: 4}},
		},
		"tower": {
			Scene: "rigidbody", Dt: 0.016, Duration: 8.0, NIteration: 10, DefaultMass: 1.0, Substeps: true,
			Scenes: SceneParams{RigidBody: RigidBodyParams{Resolution: 0.3, Subdiv: 2}},
		},
	},
	"fluid": {
		"dam-break": {
			Scene: "fluid", Dt: 0.016, Duration: 8.0, NIteration: 4, DefaultMass: 1.0,
			Scenes: SceneParams{Fluid: FluidParams{Nx: 8, Ny: 8, Nz: 8}},
		},
		"small-block": {
			Scene: "fluid", Dt: 0.016, Duration: 5.0, NIteration: 4, DefaultMass: 1.0,
			Scenes: SceneParams{Fluid: FluidParams{Nx: 4, Ny: 4, Nz: 4}},
		},
	},
}

// GetPreset looks up a named variant of a scene's preset table, or nil.
func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names registered for scene, or nil.
func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
