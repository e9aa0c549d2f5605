package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/hotel-warehouse/internal/application/export"
)

type report struct {
	use    string
	short  string
	prefix string
	ext    string
	render func(*export.ExportUseCase) func(context.Context, io.Writer) error
}

var reports = []report{
	{"inventory", "Stock report (CSV)", "Inventory", "csv",
		func(uc *export.ExportUseCase) func(context.Context, io.Writer) error { return uc.InventoryCSV }},
	{"releases", "Release report (CSV)", "Releases", "csv",
		func(uc *export.ExportUseCase) func(context.Context, io.Writer) error { return uc.ReleasesCSV }},
	{"backup", "Full JSON backup", "Warehouse_Backup", "json",
		func(uc *export.ExportUseCase) func(context.Context, io.Writer) error { return uc.BackupJSON }},
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a report from the local store",
	}
	for _, r := range reports {
		cmd.AddCommand(newReportCmd(r))
	}
	return cmd
}

func newReportCmd(r report) *cobra.Command {
	var out string
	c := &cobra.Command{
		Use:   r.use,
		Short: r.short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApplication(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			uc := a.deps.ExportUC
			if out == "-" {
				return r.render(uc)(ctx, cmd.OutOrStdout())
			}
			if out == "" {
				out = uc.FileName(r.prefix, r.ext)
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := r.render(uc)(ctx, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", `output file ("-" for stdout, default <Report>_<date>.<ext>)`)
	return c
}
