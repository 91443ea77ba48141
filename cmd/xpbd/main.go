package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/geo/r3"
	"github.com/spf13/cobra"

	"github.com/san-kum/xpbd/internal/config"
	"github.com/san-kum/xpbd/internal/scene"
	"github.com/san-kum/xpbd/internal/store"
	"github.com/san-kum/xpbd/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	nIteration int
	substeps   bool
	configFile string
	preset     string
)

// main registers the xpbd command tree and executes it, exiting with
// status 1 if the selected subcommand returns an error. With no
// subcommand it falls back to the full-screen scene picker TUI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "xpbd",
		Short: "extended position-based dynamics simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			if err := viz.RunInteractive(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".xpbd", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene headless and record its trace",
		Args:  cobra.ExactArgs(1),
		RunE:  runScene,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with the live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  liveScene,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "export a run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run-id]",
		Short: "export a run's position trace as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list the named presets available for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, n := range names {
				fmt.Printf("  %s\n", n)
			}
			return nil
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "scene picker TUI (menu, config, live view)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, exportCmd, exportCSVCmd, presetsCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&nIteration, "n-iteration", config.DefaultNIteration, "gauss-seidel iteration count for the config (scenes use their own count)")
	cmd.Flags().BoolVar(&substeps, "substeps", false, "record substepping in the run metadata (each scene picks its own update mode)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
}

// resolveConfig builds the effective Config for sceneName: preset, then
// config file (overrides the preset), then CLI flags that were explicitly
// set (override both), mirroring the teacher's flag-over-file-over-preset
// precedence in cmd/dynsim's runSimulation.
func resolveConfig(cmd *cobra.Command, sceneName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scene = sceneName

	if preset != "" {
		p := config.GetPreset(sceneName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for scene %q (available: %v)", preset, sceneName, config.ListPresets(sceneName))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("n-iteration") {
		cfg.NIteration = nIteration
	}
	if cmd.Flags().Changed("substeps") {
		cfg.Substeps = substeps
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	cfg.Scene = sceneName
	return cfg, nil
}

// buildScene maps a resolved Config onto the matching scene descriptor.
func buildScene(cfg *config.Config) (scene.Scene, error) {
	switch cfg.Scene {
	case "cord":
		p := cfg.Scenes.Cord
		return scene.NewCordScene(scene.Cord{NParticles: p.NParticles, Distance: p.Distance}), nil
	case "cloth":
		p := cfg.Scenes.Cloth
		return scene.NewClothScene(scene.Cloth{W: p.W, H: p.H, Distance: p.Distance, Bending: p.Bending, SelfCollision: p.SelfCollision, SpawnVertical: p.SpawnVertical}), nil
	case "clothdrop":
		p := cfg.Scenes.ClothDrop
		return scene.NewClothDropScene(scene.ClothDrop{W: p.W}), nil
	case "clothturn":
		p := cfg.Scenes.ClothTurn
		return scene.NewClothTurnScene(scene.ClothTurn{W: p.W, CylinderSpacing: p.CylinderSpacing, CylinderAngleDeg: p.CylinderAngleDeg}), nil
	case "spheres":
		p := cfg.Scenes.Spheres
		return scene.NewSpheresScene(scene.Spheres{Count: p.Count, Radius: p.Radius}), nil
	case "softbody":
		p := cfg.Scenes.SoftBody
		return scene.NewSoftBodyScene(scene.SoftBody{Radius: p.Radius}), nil
	case "softball":
		p := cfg.Scenes.SoftBall
		return scene.NewSoftBallScene(scene.SoftBall{Pressure: p.Pressure, MeshIndex: p.MeshIndex}), nil
	case "rigidbody":
		p := cfg.Scenes.RigidBody
		return scene.NewRigidBodyScene(scene.RigidBody{Resolution: p.Resolution, Subdiv: p.Subdiv}), nil
	case "fluid":
		p := cfg.Scenes.Fluid
		return scene.NewFluidScene(scene.Fluid{Nx: p.Nx, Ny: p.Ny, Nz: p.Nz}), nil
	default:
		return nil, fmt.Errorf("unknown scene: %s", cfg.Scene)
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	nSteps := int(cfg.Duration / cfg.Dt)
	frames := make([]store.FrameRecord, 0, nSteps)

	fmt.Printf("running %s scene...\n", cfg.Scene)
	start := time.Now()

	for i := 0; i < nSteps; i++ {
		sc.Step(cfg.Dt)
		frames = append(frames, store.FrameRecord{
			Time:      float64(i+1) * cfg.Dt,
			Positions: toStoreVecs(sc.Positions()),
		})
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg.Scene, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Substeps, frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(frames))
	return nil
}

func toStoreVecs(positions []r3.Vector) []store.Vec3 {
	out := make([]store.Vec3, len(positions))
	for i, p := range positions {
		out[i] = store.Vec3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

func liveScene(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sc, err := buildScene(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(cfg.Scene, sc, cfg.Dt)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tPARTICLES\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID, run.Scene, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration, run.Dt, run.NParticles, run.NFrames)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(*meta)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}
	return store.ExportCSVStdout(frames)
}
