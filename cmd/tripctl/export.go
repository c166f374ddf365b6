package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/tripcanvas/internal/handler"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every trip and card as a flat table",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := openPlanner(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer closeStore()

		format, _ := cmd.Flags().GetString("format")
		body, _, err := handler.EncodeExport(svc.Export(cmd.Context()), handler.ExportFormat(format))
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("output")
		if path == "" {
			_, err = cmd.OutOrStdout().Write(body)
			return err
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d bytes to %s\n", len(body), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "json, csv, yaml or toml")
	exportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
