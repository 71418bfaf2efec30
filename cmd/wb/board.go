package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Inspect boards",
	}

	cmd.AddCommand(newBoardListCmd())
	cmd.AddCommand(newBoardShowCmd())
	return cmd
}

func newBoardListCmd() *cobra.Command {
	var (
		configPath string
		owner      string
		archived   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an owner's boards, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardList(cmd, configPath, owner, archived)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().StringVar(&owner, "owner", "", "owner ID (required)")
	cmd.Flags().BoolVar(&archived, "archived", false, "include archived boards")
	cmd.MarkFlagRequired("owner")
	return cmd
}

func runBoardList(cmd *cobra.Command, configPath, owner string, archived bool) error {
	a, err := openApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	boards, err := a.store.GetBoardsByOwner(context.Background(), owner, archived)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(boards) == 0 {
		fmt.Fprintf(out, "No boards for owner %q.\n", owner)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tARCHIVED\tUPDATED")
	for _, b := range boards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", b.ID, truncate(b.Name, 40), orDash(b.Color), b.IsArchived, formatTime(b.UpdatedAt))
	}
	return w.Flush()
}

func newBoardShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <board-id>",
		Short: "Show a board with its lists and cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoardShow(cmd, configPath, args[0])
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runBoardShow(cmd *cobra.Command, configPath, id string) error {
	a, err := openApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	b, err := a.store.GetBoardWithLists(ctx, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Board:       %s\n", b.Name)
	fmt.Fprintf(out, "ID:          %s\n", b.ID)
	fmt.Fprintf(out, "Owner:       %s\n", b.OwnerID)
	fmt.Fprintf(out, "Description: %s\n", orDash(b.Description))
	fmt.Fprintf(out, "Color:       %s\n", orDash(b.Color))
	fmt.Fprintf(out, "Archived:    %t\n", b.IsArchived)
	fmt.Fprintf(out, "Updated:     %s\n", formatTime(b.UpdatedAt))

	for _, l := range b.Lists {
		lc, err := a.store.GetListWithCards(ctx, l.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n[%d] %s (%d cards)\n", l.Position, l.Name, len(lc.Cards))
		if len(lc.Cards) == 0 {
			continue
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ID\tTITLE\tSTATUS\tPRI\tASSIGNEE")
		for _, c := range lc.Cards {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", c.ID, truncate(c.Title, 40), c.Status, c.Priority, orDash(c.AssignedTo))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
