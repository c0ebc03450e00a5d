package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func NewProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  `Create, rename, delete and list projects. A project owns chats and metrics.`,
	}

	cmd.AddCommand(
		newProjectCreateCommand(),
		newProjectRenameCommand(),
		newProjectDeleteCommand(),
		newProjectListCommand(),
	)

	return cmd
}

func newProjectCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Example: `  # Create a project
  hub project create "Qualitätsmanagement"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectCreate(strings.Join(args, " "))
		},
	}
}

func runProjectCreate(name string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	project, created, err := e.store.CreateProject(name)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	if project.ID == "" {
		fmt.Println("Nothing to create: project name is empty.")
		return nil
	}
	if !created {
		fmt.Printf("Project %q already exists, selected it.\n", project.Name)
		return nil
	}
	fmt.Printf("✓ Created project %q\n", project.Name)
	return nil
}

func newProjectRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a project",
		Long:  `Rename a project. Chats, metrics and messages follow automatically.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectRename(args[0], args[1])
		},
	}
}

func runProjectRename(oldName, newName string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(oldName)
	if err != nil {
		return err
	}

	renamed, err := e.store.RenameProject(projectID, newName)
	if err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}
	if !renamed {
		fmt.Println("Nothing renamed: the new name is empty, unchanged, or already in use.")
		return nil
	}
	fmt.Printf("✓ Renamed project %q to %q\n", oldName, newName)
	return nil
}

func newProjectDeleteCommand() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a project",
		Long:  `Delete a project together with its chats, metrics and message history.`,
		Example: `  # Delete with confirmation
  hub project delete "Altes Projekt"

  # Delete without confirmation prompt
  hub project delete "Altes Projekt" --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectDelete(args[0], skipConfirm)
		},
	}

	cmd.Flags().BoolVar(&skipConfirm, "yes", false, "Skip confirmation prompt")
	return cmd
}

func runProjectDelete(name string, skipConfirm bool) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	projectID, err := e.findProject(name)
	if err != nil {
		return err
	}

	if !skipConfirm && !confirm(fmt.Sprintf("Delete project %q and everything in it?", name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if _, err := e.store.DeleteProject(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	fmt.Printf("✓ Deleted project %q\n", name)
	return nil
}

func newProjectListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectList()
		},
	}
}

func runProjectList() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	snapshot := e.store.Snapshot()
	if len(snapshot.Projects) == 0 {
		fmt.Println("No projects yet.")
		return nil
	}

	for _, project := range snapshot.Projects {
		marker := " "
		if project.ID == snapshot.SelectedProjectID {
			marker = "*"
		}
		fmt.Printf("%s %s  (%d chats, %d metrics)\n",
			marker, project.Name,
			len(snapshot.Chats[project.ID]),
			len(snapshot.MetricsFor(project.ID)),
		)
	}
	return nil
}
