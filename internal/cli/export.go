package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/export"
)

func NewExportCommand() *cobra.Command {
	var projectName string
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a project's conversation",
		Long:  `Export a project's metrics and message history as PDF or JSON.`,
		Example: `  # PDF to a file
  hub export --project "Qualitätsmanagement" --out bericht.pdf

  # JSON to stdout
  hub export --project "Qualitätsmanagement" --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(projectName, format, outPath)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.Flags().StringVar(&format, "format", "pdf", "Export format (pdf or json)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout for json, <project>.pdf for pdf)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runExport(projectName, format, outPath string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(projectName)
	if err != nil {
		return err
	}

	snapshot := e.store.Snapshot()
	doc := export.Document{
		ProjectName: projectName,
		Metrics:     snapshot.MetricsFor(projectID),
		Messages:    snapshot.MessagesFor(projectID),
	}

	switch format {
	case "json":
		if outPath == "" {
			return export.JSON(doc, os.Stdout)
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := export.JSON(doc, f); err != nil {
			return err
		}
	case "pdf":
		if outPath == "" {
			outPath = projectName + ".pdf"
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := export.PDF(doc, f); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want pdf or json)", format)
	}

	if outPath != "" {
		fmt.Printf("✓ Exported %q to %s\n", projectName, outPath)
	}
	return nil
}
