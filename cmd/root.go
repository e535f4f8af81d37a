package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	appLogger "github.com/Riyasinha-01/Voyage/app/logger"
	"github.com/Riyasinha-01/Voyage/config"
)

var (
	// envFile is loaded into the environment before the config is read.
	envFile string
	// mode overrides the configured run mode when set.
	mode string

	cfg    config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "voyage",
	Short: "Voyage serves the travel chat presentation API.",
	Long: `Voyage structures travel-assistant replies, picks out the destinations they
mention and resolves encyclopedia images for them. Run "voyage serve" for the
HTTP API or use the render, extract and images commands on plain text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: .env file not found or error loading:", err)
		}

		loaded, err := config.InitConfig()
		if err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		if mode != "" {
			loaded.Mode = mode
		}
		cfg = loaded

		logger = appLogger.New(cfg.Mode, cmd.ErrOrStderr())
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "", "run mode override (development, production)")
}

// readInput returns the contents of the file named by the first argument, or
// of stdin when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(b), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
