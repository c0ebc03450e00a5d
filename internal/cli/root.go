package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/config"
	"github.com/hcs-labs/hub/internal/localstore"
	"github.com/hcs-labs/hub/internal/state"
)

var (
	cfgPath string
	dbPath  string
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hub",
		Short: "Local-first messaging and project hub",
		Long: `Hub - Manage projects, chats and metrics from the terminal.
Projects own chats and metrics, a scripted agent answers your messages,
and every conversation can be exported as PDF or JSON.`,
		Version: "0.1.0",
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file (default: ~/.hub/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (default: ~/.hub/hub.db)")

	rootCmd.AddCommand(
		NewProjectCommand(),
		NewChatCommand(),
		NewPeerCommand(),
		NewSendCommand(),
		NewSearchCommand(),
		NewMetricCommand(),
		NewExportCommand(),
		NewLoginCommand(),
		NewRegisterCommand(),
		NewLogoutCommand(),
		NewSettingsCommand(),
		NewBrowseCommand(),
		NewStatsCommand(),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env bundles everything a command needs. Close releases the kv store.
type env struct {
	cfg   *config.Config
	kv    localstore.Store
	store *state.Store
}

func (e *env) Close() {
	e.kv.Close()
}

func openEnv() (*env, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	path := dbPath
	if path == "" {
		path = cfg.DBPath()
	}
	kv, err := localstore.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := state.Open(kv)
	if err != nil {
		kv.Close()
		return nil, err
	}

	return &env{cfg: cfg, kv: kv, store: store}, nil
}

// findProject resolves a project by name against the current snapshot.
func (e *env) findProject(name string) (string, error) {
	snapshot := e.store.Snapshot()
	if project := snapshot.ProjectByName(name); project != nil {
		return project.ID, nil
	}
	return "", fmt.Errorf("no project named %q", name)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	var response string
	fmt.Scanln(&response)
	return response == "y" || response == "Y"
}
