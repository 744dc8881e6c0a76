// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hadiyati/biorefinery/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List and export stored simulation runs",
	Long: `Runs lists the simulation history from the run store, newest first.
Use --id to show one run with its equipment detail, or --export to write
the full history to export.yaml and export.json in the store directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := store.NewStore(cfg.Store)
		if err != nil {
			return fmt.Errorf("opening run store: %w", err)
		}
		defer st.Close()

		if doExport, _ := cmd.Flags().GetBool("export"); doExport {
			if err := st.ExportYAML(cmd.Context()); err != nil {
				return fmt.Errorf("exporting YAML: %w", err)
			}
			if err := st.ExportJSON(cmd.Context()); err != nil {
				return fmt.Errorf("exporting JSON: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Exported run history to %s/export.{yaml,json}\n", cfg.Store.Dir)
			return nil
		}

		asJSON, _ := cmd.Flags().GetBool("json")

		if id, _ := cmd.Flags().GetInt64("id"); id > 0 {
			rec, err := st.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				out, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling run: %w", err)
				}
				fmt.Fprintln(os.Stdout, string(out))
				return nil
			}
			fmt.Fprintf(os.Stdout, "Run #%d  %s\n", rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(os.Stdout, "  Annual production: %.1f MT/yr\n", rec.KPIs.AnnualProductionMT)
			fmt.Fprintf(os.Stdout, "  TCI: $%.2fM  NPV: $%.2fM  IRR: %.2f%%  MSP: $%.3f/kg\n",
				rec.KPIs.TCI/1e6, rec.KPIs.NPV/1e6, rec.KPIs.IRR*100, rec.KPIs.MSPPerKg)
			for _, u := range rec.Units {
				fmt.Fprintf(os.Stdout, "  %-6s %-14s purchase $%.1fk  installed $%.1fk\n",
					u.ID, u.Kind, u.PurchaseCost/1e3, u.InstalledCost/1e3)
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := st.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		if asJSON {
			out, err := json.MarshalIndent(recs, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling runs: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(out))
			return nil
		}

		if len(recs) == 0 {
			fmt.Fprintln(os.Stdout, "No stored runs.")
			return nil
		}
		fmt.Fprintf(os.Stdout, "%-5s %-20s %12s %10s %10s %9s\n",
			"ID", "Created", "Annual (MT)", "NPV ($M)", "TCI ($M)", "MSP $/kg")
		for _, rec := range recs {
			fmt.Fprintf(os.Stdout, "%-5d %-20s %12.1f %10.2f %10.2f %9.3f\n",
				rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"),
				rec.KPIs.AnnualProductionMT, rec.KPIs.NPV/1e6, rec.KPIs.TCI/1e6, rec.KPIs.MSPPerKg)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().Int("limit", 0, "maximum number of runs to list (default from config)")
	runsCmd.Flags().Int64("id", 0, "show one run with equipment detail")
	runsCmd.Flags().Bool("json", false, "output as JSON")
	runsCmd.Flags().Bool("export", false, "export run history to YAML and JSON files")

	rootCmd.AddCommand(runsCmd)
}
