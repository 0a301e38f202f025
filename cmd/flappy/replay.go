package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagLimit int

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List and verify recorded runs",
	Long: `Work with runs recorded in the run database.

A run stores the seed, the tick of every jump and the config it was
played with, which is enough to reproduce the game exactly.

Examples:
  flappy replay list
  flappy replay verify <id>
  flappy replay delete <id>`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE:  runReplayList,
}

var replayVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-run a recorded run and check it reproduces",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayVerify,
}

var replayDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayDelete,
}

func init() {
	replayListCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of runs to show")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayVerifyCmd)
	replayCmd.AddCommand(replayDeleteCmd)
}

func runReplayList(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run database: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-36s  %-10s  %-6s  %-8s  %s\n", "ID", "Player", "Score", "Ticks", "Date")
	fmt.Printf("  %-36s  %-10s  %-6s  %-8s  %s\n", "--", "------", "-----", "-----", "----")

	for _, run := range runs {
		player := run.Player
		if player == "" {
			player = dimStyle.Render("local")
		}
		fmt.Printf("  %-36s  %-10s  %-6d  %-8d  %s\n",
			run.ID, player, run.Journal.Score, run.Journal.Ticks, run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplayVerify(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run database: %w", err)
	}
	defer store.Close()

	run, err := store.Run(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Parse(run.ConfigYAML)
	if err != nil {
		return fmt.Errorf("stored config: %w", err)
	}
	hash, err := cfg.Fingerprint()
	if err != nil {
		return err
	}
	if hash != run.ConfigHash {
		return fmt.Errorf("stored config fingerprint %016x does not match recorded %016x", hash, run.ConfigHash)
	}

	state, err := flappy.Verify(cfg, run.Journal)
	if errors.Is(err, flappy.ErrReplayDiverged) {
		fmt.Fprintln(os.Stderr, failStyle.Render("DIVERGED"), err)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s run %s: seed=%d jumps=%d ticks=%d score=%d\n",
		okStyle.Render("OK"), run.ID, run.Journal.Seed, len(run.Journal.Jumps), state.Tick, state.Score)
	return nil
}

func runReplayDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteRun(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", args[0])
	return nil
}
