package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"steinschliff/internal/format"
	"steinschliff/internal/ui"
	"steinschliff/internal/vendordir"
)

var vendorNoInput bool

var vendorCmd = &cobra.Command{
	Use:   "vendor",
	Short: "Manage vendor directories",
}

var vendorInitCmd = &cobra.Command{
	Use:   "init <key>",
	Short: "Create a vendor directory with _meta.yaml",
	Long: `Create <schliffs_dir>/<key>/ and write its _meta.yaml.

Prompts for the vendor name, country, city, website and contacts when
stdin is a terminal. Blank answers use the suggested default. Errors if
the directory already exists.`,
	Args: cobra.ExactArgs(1),
	RunE: runVendorInit,
}

var vendorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vendor directories with structure counts",
	Args:  cobra.NoArgs,
	RunE:  runVendorList,
}

func init() {
	vendorInitCmd.Flags().BoolVar(&vendorNoInput, "no-input", false, "do not prompt; use defaults")
	vendorCmd.AddCommand(vendorInitCmd, vendorListCmd)
	rootCmd.AddCommand(vendorCmd)
}

func runVendorInit(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := vendordir.ValidateKey(key); err != nil {
		return err
	}

	questions := vendordir.MetaQuestions(key)
	answers := map[string]string{}
	if !vendorNoInput && isTerminal(os.Stdin) {
		var err error
		answers, err = promptQuestions(questions)
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
	}

	v, err := vendordir.Init(cfg.SchliffsDir, key, vendordir.MetaFromAnswers(key, answers))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.KVPanel("Сервис создан", []ui.KV{
		{Key: "Ключ", Value: v.Key},
		{Key: "Каталог", Value: v.Dir},
	}, ui.ColorOK))
	return nil
}

func runVendorList(cmd *cobra.Command, _ []string) error {
	keys, err := vendordir.List(cfg.SchliffsDir)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Notice("Сервисы не найдены в "+cfg.SchliffsDir))
		return nil
	}

	rows := make([]ui.VendorRow, 0, len(keys))
	for _, key := range keys {
		v, err := vendordir.Open(cfg.SchliffsDir, key)
		if err != nil {
			return err
		}
		files, err := v.Structures()
		if err != nil {
			return err
		}
		meta := v.Meta()
		name := meta.Name
		if name == "" {
			name = format.Capitalize(key)
		}
		rows = append(rows, ui.VendorRow{
			Key:        key,
			Name:       name,
			Country:    meta.Country,
			City:       meta.City,
			Structures: len(files),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.VendorsTable(rows))
	return nil
}
