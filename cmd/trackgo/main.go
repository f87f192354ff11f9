package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/lnls-sirius/trackgo/internal/analysis"
	"github.com/lnls-sirius/trackgo/internal/config"
	"github.com/lnls-sirius/trackgo/internal/export"
	"github.com/lnls-sirius/trackgo/internal/flatfile"
	"github.com/lnls-sirius/trackgo/internal/orbit"
	"github.com/lnls-sirius/trackgo/internal/scenario"
	"github.com/lnls-sirius/trackgo/internal/store"
	"github.com/lnls-sirius/trackgo/internal/track"
	"github.com/lnls-sirius/trackgo/internal/tracker"
	"github.com/lnls-sirius/trackgo/internal/tui"
	"github.com/lnls-sirius/trackgo/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string

	lattice    string
	dialect    string
	configFile string
	initPos    config.PosConfig
	turns      int
	offset     int
	rfOn       bool
	noTraj     bool

	outPath string
	svgPath string

	fromDialect string
	toDialect   string
)

// main is the entry point for the trackgo CLI; it registers commands and
// flags, launches the interactive TUI when no subcommand is given, and
// exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "trackgo",
		Short: "charged-particle tracking for circular accelerator lattices",
		Run: func(cmd *cobra.Command, args []string) {
			if err := tui.RunInteractive(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".trackgo", "run storage directory")

	trackCmd := &cobra.Command{
		Use:   "track [lattice]",
		Short: "track a particle through the ring for N turns",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrack,
	}
	addLatticeFlags(trackCmd)
	trackCmd.Flags().IntVar(&turns, "turns", config.DefaultTurns, "number of turns")
	trackCmd.Flags().IntVar(&offset, "offset", config.DefaultOffset, "starting lattice element index")
	trackCmd.Flags().BoolVar(&rfOn, "rf", false, "turn the RF cavity on (6D tracking)")
	trackCmd.Flags().BoolVar(&noTraj, "no-trajectory", false, "discard the per-element trajectory, report only the final coordinate")
	trackCmd.Flags().StringVar(&outPath, "save", "", "save the run under --data and print its run id")

	orbitCmd := &cobra.Command{
		Use:   "orbit [lattice]",
		Short: "find the closed orbit (FindOrbit4/FindOrbit6)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOrbit,
	}
	addLatticeFlags(orbitCmd)
	orbitCmd.Flags().BoolVar(&rfOn, "rf", false, "solve the 6D orbit with the cavity on")
	orbitCmd.Flags().StringVar(&outPath, "save", "", "save the run under --data and print its run id")

	m66Cmd := &cobra.Command{
		Use:   "m66 [lattice]",
		Short: "one-turn transfer matrix around the closed orbit",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runM66,
	}
	addLatticeFlags(m66Cmd)
	m66Cmd.Flags().BoolVar(&rfOn, "rf", false, "solve the 6D orbit with the cavity on")

	convertCmd := &cobra.Command{
		Use:   "convert [in] [out]",
		Short: "convert a lattice between the trackcpp and tracy flat-file dialects",
		Args:  cobra.ExactArgs(2),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVar(&fromDialect, "from", "trackcpp", "source dialect (trackcpp, tracy)")
	convertCmd.Flags().StringVar(&toDialect, "to", "trackcpp", "destination dialect (trackcpp, tracy)")

	scanCmd := &cobra.Command{
		Use:   "scan [scenario.yaml]",
		Short: "sweep an element parameter across a range, concurrently",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the Rx-vs-Ry phase-space trail to this SVG path")

	surveyCmd := &cobra.Command{
		Use:   "survey [lattice]",
		Short: "bird's-eye physical layout of the ring",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSurvey,
	}
	addLatticeFlags(surveyCmd)
	surveyCmd.Flags().StringVar(&svgPath, "svg", "", "also write the survey layout to this SVG path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run's metadata and trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal viewer: pick a lattice, configure, watch it track",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunInteractive()
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [run_id]",
		Short: "extract the betatron tune from a saved tracking run",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}

	rootCmd.AddCommand(trackCmd, orbitCmd, m66Cmd, convertCmd, scanCmd, plotCmd, surveyCmd, listCmd, exportCmd, liveCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLatticeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&dialect, "dialect", "trackcpp", "lattice file dialect (trackcpp, tracy); ignored with --preset")
	cmd.Flags().StringVar(&configFile, "config", "", "load a scenario-style YAML config (CLI flags override it)")
	cmd.Flags().Float64Var(&initPos.Rx, "rx", 0, "initial horizontal position [m]")
	cmd.Flags().Float64Var(&initPos.Px, "px", 0, "initial horizontal angle")
	cmd.Flags().Float64Var(&initPos.Ry, "ry", 0, "initial vertical position [m]")
	cmd.Flags().Float64Var(&initPos.Py, "py", 0, "initial vertical angle")
	cmd.Flags().Float64Var(&initPos.De, "de", 0, "initial relative energy deviation")
	cmd.Flags().Float64Var(&initPos.Dl, "dl", 0, "initial path-length deviation [m]")
}

// loadAccelerator resolves the lattice argument (a file path, or a preset
// name when it names one) against --dialect/--config, applying CLI flags on
// top of any --config file.
func loadAccelerator(cmd *cobra.Command, args []string) (*track.Accelerator, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if !cmd.Flags().Changed("dialect") {
			dialect = cfg.Dialect
		}
		if len(args) == 0 {
			args = []string{cfg.Lattice}
		}
		if !cmd.Flags().Changed("turns") {
			turns = cfg.Turns
		}
		if !cmd.Flags().Changed("offset") {
			offset = cfg.Offset
		}
		if !cmd.Flags().Changed("rf") {
			rfOn = cfg.RF
		}
		if !anyPosFlagChanged(cmd) {
			initPos = cfg.InitPos
		}
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a lattice file or preset name is required")
	}
	lattice = args[0]

	for _, name := range config.ListLatticePresets() {
		if name == lattice {
			return config.GetLatticePreset(lattice), nil
		}
	}

	var acc *track.Accelerator
	var status track.Status
	switch dialect {
	case "tracy":
		acc, status = flatfile.ReadTracy(lattice)
	default:
		acc, status = flatfile.ReadTrackcpp(lattice)
	}
	if status != track.StatusSuccess {
		return nil, fmt.Errorf("read lattice: %s", status)
	}
	return acc, nil
}

func anyPosFlagChanged(cmd *cobra.Command) bool {
	for _, f := range []string{"rx", "px", "ry", "py", "de", "dl"} {
		if cmd.Flags().Changed(f) {
			return true
		}
	}
	return false
}

func runTrack(cmd *cobra.Command, args []string) error {
	acc, err := loadAccelerator(cmd, args)
	if err != nil {
		return err
	}
	acc.CavityOn = rfOn

	pos := track.FromArray(initPos.Array())
	var traj []track.Pos
	lostTurn, lostPlane, status := tracker.RingPass(acc, &pos, turns, offset, !noTraj, &traj)

	fmt.Printf("status: %s\n", status)
	if status != track.StatusSuccess {
		fmt.Printf("lost at turn %d, plane %s\n", lostTurn, lostPlane)
	}
	fmt.Printf("final: rx=%.6e px=%.6e ry=%.6e py=%.6e de=%.6e dl=%.6e\n",
		pos.Rx, pos.Px, pos.Ry, pos.Py, pos.De, pos.Dl)

	if outPath != "" {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(lattice, "track", turns, offset, status, lostPlane, traj)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func runOrbit(cmd *cobra.Command, args []string) error {
	acc, err := loadAccelerator(cmd, args)
	if err != nil {
		return err
	}
	acc.CavityOn = rfOn

	guess := track.FromArray(initPos.Array())
	closedOrbit, status := orbit.FindOrbit(acc, guess)
	fmt.Printf("status: %s\n", status)
	if status != track.StatusSuccess {
		return nil
	}
	fmt.Printf("closed orbit: rx=%.6e px=%.6e ry=%.6e py=%.6e de=%.6e dl=%.6e\n",
		closedOrbit.Rx, closedOrbit.Px, closedOrbit.Ry, closedOrbit.Py, closedOrbit.De, closedOrbit.Dl)

	if outPath != "" {
		traj, status := orbit.ClosedOrbitTrajectory(acc, closedOrbit)
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(lattice, "orbit", 1, 0, status, track.PlaneNone, traj)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func runM66(cmd *cobra.Command, args []string) error {
	acc, err := loadAccelerator(cmd, args)
	if err != nil {
		return err
	}
	acc.CavityOn = rfOn

	guess := track.FromArray(initPos.Array())
	result, status := orbit.FindM66(acc, guess)
	fmt.Printf("status: %s\n", status)
	if status != track.StatusSuccess {
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			fmt.Fprintf(w, "%10.4e", result.M66[i][j])
			if j < 5 {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]

	var acc *track.Accelerator
	var status track.Status
	switch fromDialect {
	case "tracy":
		acc, status = flatfile.ReadTracy(in)
	default:
		acc, status = flatfile.ReadTrackcpp(in)
	}
	if status != track.StatusSuccess {
		return fmt.Errorf("read %s: %s", in, status)
	}

	switch toDialect {
	case "tracy":
		return fmt.Errorf("writing the tracy dialect is not supported, only reading it")
	default:
		status = flatfile.WriteTrackcpp(out, acc)
	}
	if status != track.StatusSuccess {
		return fmt.Errorf("write %s: %s", out, status)
	}
	fmt.Printf("converted %s (%s) -> %s (%s), %d elements\n", in, fromDialect, out, toDialect, acc.Len())
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	points, err := scenario.Run(sc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "INDEX\t%s\tSTATUS\tRESULT\n", sc.Param)
	for _, p := range points {
		result := "-"
		switch sc.Mode {
		case "track":
			result = fmt.Sprintf("rx=%.4e ry=%.4e", p.FinalPos.Rx, p.FinalPos.Ry)
		case "m66":
			if p.M66 != nil {
				result = fmt.Sprintf("m11=%.4e", p.M66[0][0])
			}
		default:
			result = fmt.Sprintf("rx=%.4e ry=%.4e", p.Orbit.Rx, p.Orbit.Ry)
		}
		status := "ok"
		if p.Err != nil {
			status = p.Err.Error()
		} else if p.Status != track.StatusSuccess {
			status = p.Status.String()
		}
		fmt.Fprintf(w, "%d\t%.6g\t%s\t%s\n", p.Index, p.ParamValue, status, result)
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("run: %s  lattice: %s  mode: %s  status: %s\n\n", meta.ID, meta.Lattice, meta.Mode, meta.Status)
	fmt.Println(viz.PlotTrajectory(traj))

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.PhaseSpaceSVG(traj, 600, 600)), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func runSurvey(cmd *cobra.Command, args []string) error {
	acc, err := loadAccelerator(cmd, args)
	if err != nil {
		return err
	}
	w := viz.LatticeWireframe(acc)
	cam := viz.NewCamera()
	canvas := viz.NewCanvas(78, 30)
	viz.Render3D(canvas, w, cam)
	fmt.Println(canvas.String())

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.SurveySVG(acc, 800, 800)), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		fmt.Printf("wrote %s\n", svgPath)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
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
	fmt.Fprintln(w, "ID\tLATTICE\tMODE\tTIME\tTURNS\tSTATUS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Lattice, r.Mode, r.Timestamp.Format("2006-01-02 15:04:05"), r.Turns, r.Status)
	}
	return w.Flush()
}

func runTune(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(traj) < 2 {
		return fmt.Errorf("run %s has too few turns for a tune estimate", runID)
	}

	h := analysis.HorizontalTune(traj)
	v := analysis.VerticalTune(traj)
	fmt.Printf("horizontal tune: %.4f\n", h.Tune)
	fmt.Printf("vertical tune:   %.4f\n\n", v.Tune)

	plotLen := len(h.Spectrum) / 2
	if plotLen < 2 {
		plotLen = len(h.Spectrum)
	}
	fmt.Println(asciigraph.Plot(h.Spectrum[:plotLen],
		asciigraph.Height(12), asciigraph.Width(78), asciigraph.Caption("Rx power spectrum")))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(meta.Lattice, meta.Mode, meta.Turns, meta.Offset, meta.Status, meta.LostPlane, traj)
}
