package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/housemate/internal/calendar"
	"github.com/mmynk/housemate/internal/ownership"
)

func newDotsCommand() *cobra.Command {
	var (
		actor string
		file  string
		opts  = calendar.DefaultOptions
	)

	cmd := &cobra.Command{
		Use:   "dots",
		Short: "Aggregate a JSON array of records into calendar markers",
		Long: `Reads a JSON array of records (puzzles, accounts or anything with an id,
a date and an owner field) and prints the per-day markers for --actor.`,
		Example: "  housemate dots --actor alice --file puzzles.json\n  housemate dots --actor 3 --date-field date --owner-fields createdBy < accounts.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", file, err)
				}
				defer f.Close()
				in = f
			}

			var records []ownership.Fields
			dec := json.NewDecoder(in)
			dec.UseNumber()
			if err := dec.Decode(&records); err != nil {
				return fmt.Errorf("failed to decode records: %w", err)
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			out.SetIndent("", "  ")
			return out.Encode(calendar.BuildDotsWith(opts, actor, records))
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "login id or member id of the viewer")
	cmd.Flags().StringVar(&file, "file", "", "JSON file to read (default: stdin)")
	cmd.Flags().StringVar(&opts.IDField, "id-field", opts.IDField, "record id field")
	cmd.Flags().StringVar(&opts.DateField, "date-field", opts.DateField, "date field bucketed by day")
	cmd.Flags().StringVar(&opts.CreatedField, "created-field", opts.CreatedField, "creation timestamp used to break ties")
	cmd.Flags().StringSliceVar(&opts.OwnerFields, "owner-fields", opts.OwnerFields, "owner fields probed in order")
	return cmd
}
