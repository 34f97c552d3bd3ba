// Command fuzzysearch is a small CLI over the fuzzy matching engine,
// searching an embedded demo dataset unless a YAML config overrides the
// key paths and tuning.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eda-labs/fuzzysearch/internal/config"
	"github.com/eda-labs/fuzzysearch/internal/obslog"
	"github.com/eda-labs/fuzzysearch/pkg/fuzzysearch"
	"github.com/eda-labs/fuzzysearch/pkg/models"
)

var (
	configPath string
	debug      bool
	limit      int
)

func main() {
	root := &cobra.Command{
		Use:   "fuzzysearch",
		Short: "Approximate string matching over a small in-memory record collection",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML tuning file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging")

	searchCmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Rank the demo dataset against a query",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().IntVar(&limit, "limit", 10, "maximum results to print (0 = unlimited)")

	highlightCmd := &cobra.Command{
		Use:   "highlight [query...]",
		Short: "Print the best-matching title with matched spans marked",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHighlight,
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the size of the embedded demo dataset",
		RunE:  runStats,
	}

	root.AddCommand(searchCmd, highlightCmd, statsCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*models.Config, error) {
	if configPath == "" {
		cfg := models.DefaultConfig()
		cfg.Keys = []models.KeySpec{
			{Tag: "title", Path: "Title"},
			{Tag: "desc", Path: "Description"},
			{Tag: "tag", Path: "Tags.*"},
		}
		return cfg, nil
	}
	return config.Load(configPath)
}

func buildSearch() (*fuzzysearch.Search, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := obslog.New(debug)
	defer log.Sync() //nolint:errcheck

	records := demoDataset()
	source := make([]models.Record, len(records))
	for i, r := range records {
		source[i] = r
	}
	return fuzzysearch.New(cfg, source, log), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := buildSearch()
	if err != nil {
		return err
	}
	results := s.Query(strings.Join(args, " "))
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for i, r := range results {
		rec, ok := r.Value.(demoRecord)
		if !ok {
			fmt.Printf("%d. score=%.2f %v\n", i+1, r.Score, r.Value)
			continue
		}
		fmt.Printf("%d. score=%.2f %s -- %s\n", i+1, r.Score, rec.Title, rec.Description)
	}
	return nil
}

func runHighlight(cmd *cobra.Command, args []string) error {
	s, err := buildSearch()
	if err != nil {
		return err
	}
	raw := strings.Join(args, " ")
	results := s.Query(raw)
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	rec, ok := results[0].Value.(demoRecord)
	if !ok {
		return fmt.Errorf("unexpected result type %T", results[0].Value)
	}
	fmt.Println(s.Highlight(raw, rec.Title))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	fmt.Printf("%d demo records\n", len(demoDataset()))
	return nil
}
