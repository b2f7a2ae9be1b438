package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"syllabus-admin/internal/app"
	"syllabus-admin/internal/config"
	"syllabus-admin/internal/domain"
	"syllabus-admin/internal/infra/syllabus"
)

var (
	configPath string
	baseURL    string
	token      string
	timeout    string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	// A .env file stands in for exported variables during development.
	_ = godotenv.Load()

	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "syllabus-admin",
		Short: "Administer syllabus chapters and MCQs over the management API",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", os.Getenv("SYLLABUS_API_URL"), "syllabus API base URL")
	cmd.PersistentFlags().StringVar(&token, "token", os.Getenv("SYLLABUS_TOKEN"), "bearer token for authorized commands")
	cmd.PersistentFlags().StringVar(&timeout, "timeout", "", "per-request timeout, e.g. 10s")

	cmd.AddCommand(NewLoginCmd(&configPath, &baseURL, &timeout))
	cmd.AddCommand(NewChaptersCmd(&configPath, &baseURL, &token, &timeout))
	cmd.AddCommand(NewMCQsCmd(&configPath, &baseURL, &token, &timeout))
	return cmd
}

// buildService resolves settings (flag, then environment via flag default,
// then config file, then built-in default) and wires the HTTP client
// behind the admin service.
func buildService(configPath, baseURL, timeout string) (*app.AdminService, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	finalURL := baseURL
	if finalURL == "" {
		finalURL = cfg.API.BaseURL
	}
	if finalURL == "" {
		finalURL = config.DefaultBaseURL
	}

	rawTimeout := timeout
	if rawTimeout == "" {
		rawTimeout = cfg.API.Timeout
	}

	client := syllabus.NewClient(finalURL, config.Timeout(rawTimeout, syllabus.DefaultTimeout))
	return app.NewAdminService(client), nil
}

// resolveSession turns the --token flag (or SYLLABUS_TOKEN) into the
// session authorized commands carry.
func resolveSession(token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, fmt.Errorf("%w: pass --token, set SYLLABUS_TOKEN, or run 'syllabus-admin login' first", domain.ErrNoSession)
	}
	return syllabus.SessionFromToken(token), nil
}

// parseID parses a positive numeric command argument.
func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive number, got %q", domain.ErrInvalidInput, what, arg)
	}
	return id, nil
}

// readJSON decodes a JSON payload from path, or from stdin when path is
// "-".
func readJSON(cmd *cobra.Command, path string, out any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
