package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steinschliff/internal/conditions"
	"steinschliff/internal/model"
	"steinschliff/internal/pipeline"
	"steinschliff/internal/ui"
)

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "Show structure counts per snow condition",
	Args:  cobra.NoArgs,
	RunE:  runConditions,
}

var conditionsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check snow condition files against the schema",
	Long: `Strictly decode every file in the snow conditions directory and report
unknown fields, wrong types, missing key or name, empty temperature ranges
and duplicate keys. Exits 1 when any file has problems.`,
	Args: cobra.NoArgs,
	RunE: runConditionsValidate,
}

func init() {
	conditionsCmd.AddCommand(conditionsValidateCmd)
	rootCmd.AddCommand(conditionsCmd)
}

func runConditions(cmd *cobra.Command, _ []string) error {
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	st := pipeline.ConditionStats(c.loaded.Services, c.registry)
	if st.Total == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Notice("Структуры не найдены"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.StatsTable(st))
	return nil
}

func runConditionsValidate(cmd *cobra.Command, _ []string) error {
	rep, err := conditions.Check(cfg.ConditionsDir)
	if err != nil {
		return fmt.Errorf("check %s: %w", cfg.ConditionsDir, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.ConditionsReport(rep))
	if len(rep.Problems) > 0 {
		return model.NewUserError(model.ErrInvalidInput, "Ошибки валидации",
			"%d из %d файлов содержат ошибки", rep.Files-rep.Valid, rep.Files)
	}
	return nil
}
