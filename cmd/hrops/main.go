package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hrops/internal/app"
	"hrops/internal/config"
	"hrops/internal/encryption"
	"hrops/internal/hr"
	"hrops/internal/model"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a wired App. The caller must
// defer a.Close(). If encryption is configured, the passphrase is
// prompted for on stdin.
func newApp() (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	passphrase := ""
	if cfg.Encryption.Type != "" && cfg.Encryption.Type != "none" {
		passphrase, err = readSecret("Encryption passphrase: ")
		if err != nil {
			return nil, err
		}
	}

	a, err := app.NewApp(cfg, passphrase)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// readSecret prompts on stderr and reads a line without echo.
func readSecret(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(b), nil
}

var rootCmd = &cobra.Command{
	Use:   "hrops",
	Short: "HR operations service",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if encrypt {
			cfg.Encryption.Type = "age"
		}

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		if encrypt {
			passphrase, err := readSecret("New encryption passphrase: ")
			if err != nil {
				return err
			}
			confirm, err := readSecret("Confirm passphrase: ")
			if err != nil {
				return err
			}
			if passphrase != confirm {
				return fmt.Errorf("passphrases do not match")
			}

			enc := encryption.NewAgeEncryptor(cfg.Encryption)
			if err := enc.Setup(passphrase); err != nil {
				return fmt.Errorf("generating encryption keys: %w", err)
			}
			fmt.Printf("Encryption keys written under %s\n", cfg.Encryption.PublicKeyPath)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Println("Set http.jwt_secret in the config before serving.")
		return nil
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Data Dir:    %s\n", cfg.DataDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Storage:     %s\n", cfg.Storage.Type)
		fmt.Printf("Encryption:  %s\n", cfg.Encryption.Type)
		fmt.Printf("Listen Addr: %s\n", cfg.HTTP.ListenAddr)
		return nil
	},
}

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sig
			a.Logger().Info("shutting down")
			a.Shutdown()
		}()

		return a.Serve()
	},
}

// seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create an initial admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		password, err := readSecret("Admin password: ")
		if err != nil {
			return err
		}
		if len(password) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		emp, err := a.Employees.Create(hr.CreateEmployee{
			Email:      email,
			Password:   password,
			FirstName:  firstName,
			LastName:   lastName,
			Role:       model.RoleAdmin,
			Department: "Administration",
			Position:   "Administrator",
			HireDate:   model.DateOf(hr.RealClock{}.Now()),
		})
		if err != nil {
			return fmt.Errorf("creating admin: %w", err)
		}

		fmt.Printf("Admin account created: %s (%s)\n", emp.Email, emp.ID)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("encrypt", false, "Generate age keys and enable at-rest encryption")
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().String("email", "", "Admin email address")
	seedCmd.Flags().String("first-name", "Admin", "Admin first name")
	seedCmd.Flags().String("last-name", "User", "Admin last name")
}
