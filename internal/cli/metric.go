package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/models"
)

func NewMetricCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Manage project metrics",
		Long:  `Attach key/value metrics to a project, optionally tagged with a color.`,
	}

	cmd.AddCommand(
		newMetricSetCommand(),
		newMetricListCommand(),
		newMetricDeleteCommand(),
	)

	return cmd
}

func newMetricSetCommand() *cobra.Command {
	var projectName string
	var color string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Add a metric to a project",
		Example: `  hub metric set --project "Qualitätsmanagement" "Fehlerquote" "0.8%"
  hub metric set --project "Qualitätsmanagement" --color green "Audit-Status" "bestanden"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetricSet(projectName, args[0], args[1], color)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.Flags().StringVar(&color, "color", "", fmt.Sprintf("Color tag (%s)", strings.Join(models.MetricColors, ", ")))
	cmd.MarkFlagRequired("project")
	return cmd
}

func runMetricSet(projectName, key, value, color string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(projectName)
	if err != nil {
		return err
	}

	metric, created, err := e.store.SetMetric(projectID, key, value, color)
	if err != nil {
		return fmt.Errorf("failed to set metric: %w", err)
	}
	if !created {
		fmt.Println("Nothing to set: metric key is empty.")
		return nil
	}
	fmt.Printf("✓ %s: %s\n", metric.Key, metric.Value)
	return nil
}

func newMetricListCommand() *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetricList(projectName)
		},
	}

	cmd.Flags().StringVar(&projectName, "project", "", "Project name")
	cmd.MarkFlagRequired("project")
	return cmd
}

func runMetricList(projectName string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(projectName)
	if err != nil {
		return err
	}

	metrics := e.store.Snapshot().MetricsFor(projectID)
	if len(metrics) == 0 {
		fmt.Println("No metrics yet.")
		return nil
	}

	for _, metric := range metrics {
		fmt.Printf("%s: %s", metric.Key, metric.Value)
		if metric.Color != "" {
			fmt.Printf("  [%s]", metric.Color)
		}
		fmt.Printf("  (id %s)\n", metric.ID)
	}
	return nil
}

func newMetricDeleteCommand() *cobra.Command {
	var metricID string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a metric by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetricDelete(metricID)
		},
	}

	cmd.Flags().StringVar(&metricID, "id", "", "Metric id (see 'hub metric list')")
	cmd.MarkFlagRequired("id")
	return cmd
}

func runMetricDelete(metricID string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	deleted, err := e.store.DeleteMetric(metricID)
	if err != nil {
		return fmt.Errorf("failed to delete metric: %w", err)
	}
	if !deleted {
		return fmt.Errorf("no metric with id %q", metricID)
	}
	fmt.Println("✓ Deleted metric")
	return nil
}
