package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/billfold/billfold/internal/records"
	"github.com/billfold/billfold/pkg/dedupe"
	"github.com/billfold/billfold/pkg/logging"
	"github.com/billfold/billfold/pkg/schema"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Deduplicate a batch of extracted bill records",
	Long: "Reads a record file (YAML or JSON), merges records that describe the same\n" +
		"bill, and writes the deduplicated list. Field mappings are optional; without\n" +
		"them the default field synonyms apply.",
	RunE: runDedupe,
}

func init() {
	dedupeCmd.Flags().StringP("records", "r", "", "record file to deduplicate (yaml or json)")
	dedupeCmd.Flags().StringP("mappings", "m", "", "optional field-mapping file")
	dedupeCmd.Flags().StringP("out", "o", "", "output file; prints YAML to stdout when omitted")
	dedupeCmd.Flags().Float64("amount-tolerance", dedupe.DefaultConfig().AmountTolerance, "relative amount tolerance for a match")
	dedupeCmd.Flags().Int("date-window", dedupe.DefaultConfig().DateWindowDays, "calendar-day window for a date match")
	dedupeCmd.Flags().Float64("length-ratio", dedupe.DefaultConfig().LengthRatio, "length ratio before a longer string wins a merge")
	_ = dedupeCmd.MarkFlagRequired("records")

	for _, flag := range []string{"amount-tolerance", "date-window", "length-ratio"} {
		_ = viper.BindPFlag(flag, dedupeCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, args []string) error {
	recordsPath, _ := cmd.Flags().GetString("records")
	mappingsPath, _ := cmd.Flags().GetString("mappings")
	outPath, _ := cmd.Flags().GetString("out")

	recs, err := records.LoadRecords(recordsPath)
	if err != nil {
		return err
	}

	var mappings []schema.FieldMapping
	if mappingsPath != "" {
		if mappings, err = records.LoadMappings(mappingsPath); err != nil {
			return err
		}
	}

	d := dedupe.New(dedupe.WithConfig(dedupe.Config{
		AmountTolerance: viper.GetFloat64("amount-tolerance"),
		DateWindowDays:  viper.GetInt("date-window"),
		LengthRatio:     viper.GetFloat64("length-ratio"),
	}))
	result := d.Dedupe(recs, mappings)

	logging.Info().
		Int("input", result.Report.Input).
		Int("output", result.Report.Output).
		Int("merged", result.Report.Merged).
		Int("group_failures", result.Report.GroupFailures).
		Msg("deduplication complete")

	if outPath != "" {
		return records.SaveRecords(outPath, result.Records)
	}

	data, err := records.EncodeYAML(result.Records)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
