package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"finitefield.org/glb-gallery/internal/gallery"
	"finitefield.org/glb-gallery/internal/platform/observability"
)

var (
	listQuery  string
	listOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cards of the manifest",
	Long:  "Print every card built from the manifest, optionally narrowed by a search term.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger, err := observability.NewLogger(cfg.Observability.LogLevel, observability.WithOutputPaths("stderr"))
		if err != nil {
			return fmt.Errorf("initialise logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()

		ctx := observability.WithLogger(context.Background(), logger)
		rt := bootstrap(ctx, cfg, logger)
		defer rt.Close(logger)

		cards := visibleCards(rt.state.Registry.Cards(), listQuery)
		switch strings.ToLower(listOutput) {
		case "json":
			return writeCardsJSON(cmd.OutOrStdout(), cards)
		case "", "table":
			return writeCardsTable(cmd.OutOrStdout(), cards)
		default:
			return fmt.Errorf("unknown output format %q", listOutput)
		}
	},
}

func init() {
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "only cards whose filename or folder contains the term")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format (table, json)")
}

func visibleCards(cards []gallery.Card, query string) []gallery.Card {
	out := make([]gallery.Card, 0, len(cards))
	for _, v := range gallery.Filter(cards, query) {
		if v.Visible {
			out = append(out, v.Card)
		}
	}
	return out
}

func writeCardsTable(w io.Writer, cards []gallery.Card) error {
	table := tablewriter.NewTable(w)
	table.Header("ID", "Folder", "Filename", "Asset")
	for _, card := range cards {
		if err := table.Append(card.ID, card.FolderID, card.Filename, card.AssetPath); err != nil {
			return err
		}
	}
	return table.Render()
}

func writeCardsJSON(w io.Writer, cards []gallery.Card) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cards)
}
