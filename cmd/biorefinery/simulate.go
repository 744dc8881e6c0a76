// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/hadiyati/biorefinery/internal/flowsheet"
	"github.com/hadiyati/biorefinery/internal/report"
	"github.com/hadiyati/biorefinery/internal/store"
	"github.com/hadiyati/biorefinery/internal/tea"
	"github.com/hadiyati/biorefinery/internal/thermo"
	"github.com/hadiyati/biorefinery/internal/utility"
	"github.com/hadiyati/biorefinery/pkg/types"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate the flowsheet and evaluate its economics",
	Long: `Simulate assembles the lactic acid flowsheet from the configuration, runs
the mass balance, sizing, and costing passes, prices the utilities, and
evaluates the project economics. The full report goes to stdout and the
run is persisted to the run store unless --no-store is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fs, err := flowsheet.BuildLacticAcid(cfg)
		if err != nil {
			return fmt.Errorf("building flowsheet: %w", err)
		}

		result, err := fs.Simulate(cmd.Context())
		if err != nil {
			return fmt.Errorf("simulating: %w", err)
		}

		feed := fs.Stream(flowsheet.StreamGlucoseFeed)
		broth := fs.Stream(flowsheet.StreamBroth)
		product := fs.Stream(flowsheet.StreamLacticAcid)

		pricer := utility.NewPricer(cfg.Economics.Utilities)
		analysis := tea.Evaluate(cfg.Economics, cfg.Production, tea.Inputs{
			InstalledCost:     result.TotalInstalledCost,
			GlucoseFeedKgH:    feed.MassOf(thermo.Glucose),
			LAProductKgH:      product.MassOf(thermo.LacticAcid),
			UtilityAnnualCost: pricer.TotalAnnualCost(result.Demands, cfg.Production.OperatingHours()),
		})

		data := report.Data{
			Config:   cfg,
			Result:   result,
			Analysis: analysis,
			Feed:     feed,
			Broth:    broth,
			Product:  product,
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			out, err := json.MarshalIndent(report.KPIs(data), "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling KPIs: %w", err)
			}
			fmt.Fprintln(os.Stdout, string(out))
		} else {
			report.Write(os.Stdout, data)
		}

		noStore, _ := cmd.Flags().GetBool("no-store")
		if noStore {
			return nil
		}

		cfgYAML, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		st, err := store.NewStore(cfg.Store)
		if err != nil {
			return fmt.Errorf("opening run store: %w", err)
		}
		defer st.Close()

		runID, err := st.Save(cmd.Context(), types.RunRecord{
			CreatedAt:  time.Now().UTC(),
			ConfigYAML: string(cfgYAML),
			KPIs:       report.KPIs(data),
			Units:      result.Units,
			Streams:    result.Streams,
		})
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		logrus.WithField("run_id", runID).Info("run saved")
		fmt.Fprintf(os.Stderr, "Run saved as #%d\n", runID)
		return nil
	},
}

func init() {
	simulateCmd.Flags().Bool("json", false, "output KPIs as JSON instead of the text report")
	simulateCmd.Flags().Bool("no-store", false, "do not persist the run to the run store")

	rootCmd.AddCommand(simulateCmd)
}
