package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagTicks     uint64
	flagJumpEvery uint64
	flagRecord    bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game and print the final state",
	Long: `Run a game without a terminal UI, as fast as possible.

The body jumps on every tick that is a multiple of --jump-every
(0 = never). The game stops when it ends or after --ticks steps.

Examples:
  flappy simulate --seed 42
  flappy simulate --seed 42 --ticks 1000 --jump-every 18
  flappy simulate --seed 42 --jump-every 18 --record`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&flagTicks, "ticks", 10000, "Maximum number of ticks to run")
	simulateCmd.Flags().Uint64Var(&flagJumpEvery, "jump-every", 0, "Jump every N ticks (0 = never)")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the run in the database")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := flappy.NewSession(gameCfg)
	if err != nil {
		return err
	}

	state := session.Start(seed)
	for state.Running() && state.Tick < flagTicks {
		if flagJumpEvery > 0 && state.Tick%flagJumpEvery == 0 {
			state = session.Jump()
		}
		state = session.Tick()
	}

	fmt.Printf("Seed:      %d\n", seed)
	fmt.Printf("Phase:     %s\n", state.Phase())
	fmt.Printf("Ticks:     %d\n", state.Tick)
	fmt.Printf("Score:     %d\n", state.Score)
	fmt.Printf("Body:      y=%.2f v=%.2f\n", state.Body.Y, state.Body.Velocity)
	fmt.Printf("Obstacles: %d\n", len(state.Obstacles))
	for i, o := range state.Obstacles {
		fmt.Printf("  %d: x=%.1f gap_top=%.1f\n", i, o.X, o.GapTop)
	}

	if !flagRecord {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := storage.NewRun(session, "")
	if err != nil {
		return err
	}
	id, err := store.SaveRun(run)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded:  %s\n", id)
	return nil
}
