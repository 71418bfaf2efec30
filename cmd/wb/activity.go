package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zulandar/workboard/internal/store"
)

func newActivityCmd() *cobra.Command {
	var (
		configPath string
		limit      int
		offset     int
	)

	cmd := &cobra.Command{
		Use:   "activity <board-id>",
		Short: "Show a board's activity log, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActivity(cmd, configPath, args[0], limit, offset)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().IntVar(&limit, "limit", store.DefaultActivityLimit, "maximum entries to show (1-100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "entries to skip")
	return cmd
}

func runActivity(cmd *cobra.Command, configPath, boardID string, limit, offset int) error {
	if err := store.CheckPage(limit, offset); err != nil {
		return err
	}
	a, err := openApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.store.GetBoardActivities(context.Background(), boardID, limit, offset)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No activity.")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tUSER\tTYPE\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", formatTime(e.CreatedAt), e.UserID, e.ActivityType, e.Description)
	}
	return w.Flush()
}
