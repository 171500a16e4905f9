package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-mines/internal/storage"
)

var (
	flagScoresLimit int
	flagRecent      int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [preset]",
	Short: "Show statistics and best times",
	Long: `Without arguments, display games played, won and the best time for every
preset that has results. With a preset, also list its fastest wins.

--recent lists the latest games of every preset instead.
--clear deletes the results of the given preset, or all results without one.

Examples:
  mines scores
  mines scores expert
  mines scores beginner --limit 5
  mines scores --recent 20
  mines scores expert --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of best times to show")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Show the N most recent games")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete results (of the preset, or all)")
}

// scoresOptions selects what the scores command prints or changes.
type scoresOptions struct {
	preset string
	limit  int
	recent int
	clear  bool
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	opts := scoresOptions{limit: flagScoresLimit, recent: flagRecent, clear: flagClear}
	if len(args) > 0 {
		opts.preset = args[0]
	}

	if err := showScores(os.Stdout, store, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showScores(w io.Writer, store *storage.Store, opts scoresOptions) error {
	switch {
	case opts.clear:
		if err := store.ClearResults(opts.preset); err != nil {
			return err
		}
		if opts.preset == "" {
			fmt.Fprintln(w, "Cleared all results.")
		} else {
			fmt.Fprintf(w, "Cleared results for %s.\n", opts.preset)
		}
		return nil
	case opts.recent > 0:
		return printRecent(w, store, opts.recent)
	case opts.preset == "":
		return printAllStats(w, store)
	default:
		return printPresetScores(w, store, opts.preset, opts.limit)
	}
}

func printAllStats(w io.Writer, store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'mines play' to record the first one!")
		return nil
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "  %-14s  %-6s  %-6s  %-5s  %s\n", "Preset", "Played", "Won", "Rate", "Best")
	fmt.Fprintf(w, "  %-14s  %-6s  %-6s  %-5s  %s\n", "------", "------", "---", "----", "----")
	for _, name := range names {
		st := all[name]
		rate := 0
		if st.Played > 0 {
			rate = st.Won * 100 / st.Played
		}
		fmt.Fprintf(w, "  %-14s  %-6d  %-6d  %3d%%   %s\n", name, st.Played, st.Won, rate, formatBest(st))
	}
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	results, err := store.RecentResults(limit)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-14s  %-10s  %-6s  %-10s  %s\n", "Preset", "Board", "Result", "Time", "Date")
	fmt.Fprintf(w, "  %-14s  %-10s  %-6s  %-10s  %s\n", "------", "-----", "------", "----", "----")
	for _, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		fmt.Fprintf(w, "  %-14s  %-10s  %-6s  %-10s  %s\n",
			r.Preset, boardSize(r), outcome, r.Elapsed.Round(100*time.Millisecond), r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printPresetScores(w io.Writer, store *storage.Store, preset string, limit int) error {
	st, err := store.Stats(preset)
	if err != nil {
		return err
	}
	times, err := store.BestTimes(preset, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Best Times - %s\n", preset)
	fmt.Fprintln(w)

	if len(times) == 0 {
		fmt.Fprintln(w, "No wins recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'mines play %s' to set the first time!\n", preset)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %-10s  %s\n", "Rank", "Time", "Board", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-10s  %s\n", "----", "----", "-----", "----")
	for i, r := range times {
		fmt.Fprintf(w, "  %-4d  %-10s  %-10s  %s\n", i+1, r.Elapsed.Round(100*time.Millisecond), boardSize(r), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Played: %d  Won: %d  Best: %s\n", st.Played, st.Won, formatBest(st))
	return nil
}

func boardSize(r storage.Result) string {
	return fmt.Sprintf("%dx%d/%d", r.Height, r.Width, r.Mines)
}

func formatBest(st storage.Stats) string {
	if st.BestTime <= 0 {
		return "--"
	}
	return st.BestTime.Round(100 * time.Millisecond).String()
}
