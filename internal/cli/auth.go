package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hcs-labs/hub/internal/auth"
	"github.com/hcs-labs/hub/internal/models"
)

func NewRegisterCommand() *cobra.Command {
	var admin bool

	cmd := &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Register a local account",
		Long:  `Register an account in the local credential table. Sign-in is mocked; nothing leaves this machine.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(args[0], args[1], admin)
		},
	}

	cmd.Flags().BoolVar(&admin, "admin", false, "Grant the admin flag")
	return cmd
}

func runRegister(email, password string, admin bool) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	user, err := auth.NewService(e.kv).SignUp(email, password, admin)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Printf("✓ Registered %s\n", user.Email)
	return nil
}

func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(args[0], args[1])
		},
	}
}

func runLogin(email, password string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	session, err := auth.NewService(e.kv).SignIn(email, password)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}
	fmt.Printf("✓ Signed in as %s\n", session.Email)
	return nil
}

func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout()
		},
	}
}

func runLogout() error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := auth.NewService(e.kv).SignOut(); err != nil {
		return fmt.Errorf("sign-out failed: %w", err)
	}
	fmt.Println("✓ Signed out")
	return nil
}

func NewSettingsCommand() *cobra.Command {
	var displayName string
	var language string
	var theme string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display settings",
		Example: `  # Show current settings
  hub settings

  # Change them
  hub settings --name "Max" --language de --theme dark`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettings(cmd, displayName, language, theme)
		},
	}

	cmd.Flags().StringVar(&displayName, "name", "", "Display name")
	cmd.Flags().StringVar(&language, "language", "", "Interface language (de, en)")
	cmd.Flags().StringVar(&theme, "theme", "", "Theme (light, dark)")
	return cmd
}

func runSettings(cmd *cobra.Command, displayName, language, theme string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	service := auth.NewService(e.kv)
	settings, err := service.Settings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	changed := false
	if cmd.Flags().Changed("name") {
		settings.DisplayName = displayName
		changed = true
	}
	if cmd.Flags().Changed("language") {
		settings.Language = language
		changed = true
	}
	if cmd.Flags().Changed("theme") {
		settings.Theme = theme
		changed = true
	}

	if changed {
		if err := service.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("✓ Settings saved")
	}

	printSettings(settings)
	return nil
}

func printSettings(settings models.Settings) {
	name := settings.DisplayName
	if name == "" {
		name = "(not set)"
	}
	fmt.Printf("Display name: %s\n", name)
	fmt.Printf("Language:     %s\n", settings.Language)
	fmt.Printf("Theme:        %s\n", settings.Theme)
}
