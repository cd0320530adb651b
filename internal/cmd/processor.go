package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/venusai/venus-services/internal/config"
	"github.com/venusai/venus-services/internal/processor"
	"go.uber.org/zap"
)

var processorCmd = &cobra.Command{
	Use:   "processor",
	Short: "Start the chat processor service",
	Long: `Start the chat processor: assembles conversation context for each
incoming message, calls the AI gateway and saves the exchange.`,
	RunE: runProcessor,
}

func init() {
	rootCmd.AddCommand(processorCmd)

	processorCmd.Flags().String("host", "", "host to bind to")
	processorCmd.Flags().Int("port", 0, "port to bind to")
	processorCmd.Flags().String("mode", "", "server mode (debug, release, test)")

	viper.BindPFlag("processor.host", processorCmd.Flags().Lookup("host"))
	viper.BindPFlag("processor.port", processorCmd.Flags().Lookup("port"))
	viper.BindPFlag("processor.mode", processorCmd.Flags().Lookup("mode"))
}

func runProcessor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ValidateProcessor(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := buildLogger(cfg.Processor.Mode, cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Info("Starting chat processor",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("host", cfg.Processor.Host),
		zap.Int("port", cfg.Processor.Port),
		zap.String("ai_service_url", cfg.Processor.AIServiceURL),
		zap.String("backend_service_url", cfg.Processor.BackendServiceURL))

	srv, err := processor.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Processor.Host, cfg.Processor.Port)
	return serveHTTP(log, addr, srv.Router(), cfg.Processor.RequestTimeout())
}
