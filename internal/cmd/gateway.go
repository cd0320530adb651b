package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/venusai/venus-services/internal/config"
	"github.com/venusai/venus-services/internal/gateway"
	"go.uber.org/zap"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the AI gateway service",
	Long: `Start the AI gateway: proxies chat completions to the upstream
provider and extracts text from uploaded PDF, DOCX and CSV documents.`,
	RunE: runGateway,
}

func init() {
	rootCmd.AddCommand(gatewayCmd)

	gatewayCmd.Flags().String("host", "", "host to bind to")
	gatewayCmd.Flags().Int("port", 0, "port to bind to")
	gatewayCmd.Flags().String("mode", "", "server mode (debug, release, test)")

	viper.BindPFlag("gateway.host", gatewayCmd.Flags().Lookup("host"))
	viper.BindPFlag("gateway.port", gatewayCmd.Flags().Lookup("port"))
	viper.BindPFlag("gateway.mode", gatewayCmd.Flags().Lookup("mode"))
}

func runGateway(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateGateway(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := buildLogger(cfg.Gateway.Mode, cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting AI gateway",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("host", cfg.Gateway.Host),
		zap.Int("port", cfg.Gateway.Port),
		zap.String("api_base_url", cfg.Gateway.APIBaseURL),
		zap.String("api_key", maskAPIKey(cfg.Gateway.APIKey)))

	srv, err := gateway.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Gateway.Host, cfg.Gateway.Port)
	return serveHTTP(log, addr, srv.Router(), cfg.Gateway.RequestTimeout())
}
