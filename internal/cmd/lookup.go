package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filmlens/filmlens/internal/config"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <title>",
	Short: "Resolve a single movie title and print the record as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookupCommand,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookupCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	res, err := newResolver(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	title := strings.Join(args, " ")
	record, err := res.Resolve(ctx, title)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", title, err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}
