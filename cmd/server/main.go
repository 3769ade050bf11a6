package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"coursedash/internal/api"
	"coursedash/internal/config"
	"coursedash/internal/dashboard"
	"coursedash/internal/models"
	"coursedash/internal/report"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	port     string
	logLevel string
	pretty   bool
	pngDir   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "coursedash",
		Short: "Course status dashboard",
		Long: `coursedash tabulates course-completion spreadsheets by region and status
and serves the charts and per-region tables as a web dashboard.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: LOG_LEVEL or info)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default: PORT or 8080)")

	reportCmd := &cobra.Command{
		Use:   "report [input.xlsx]",
		Short: "Run one pass over a file and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	reportCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	reportCmd.Flags().StringVar(&pngDir, "png-dir", "", "Directory to write PNG charts to")

	rootCmd.AddCommand(serveCmd, reportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *zap.Logger, *dashboard.Driver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if port != "" {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, dashboard.NewDriver(report.DefaultColorMap(), logger), nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, logger, driver, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	// 1. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Renderer = api.NewTemplates()
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	// 2. Routes; every request is an independent rendering pass
	charts := report.PNGRenderer{Width: cfg.Chart.Width, Height: cfg.Chart.Height}
	h := api.NewHandler(driver, charts, cfg.Server.MaxUploadBytes(), logger)
	h.RegisterRoutes(e)

	// 3. Start, then wait for a signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server ready", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, logger, driver, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	inputPath := args[0]
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	host := &dashboard.Collector{}
	pass, err := runPass(driver, host, filepath.Base(inputPath), data)
	if err != nil {
		return err
	}
	rep := host.Report(pass, filepath.Base(inputPath))

	var out []byte
	if pretty {
		out, err = json.MarshalIndent(rep, "", "  ")
	} else {
		out, err = json.Marshal(rep)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if pngDir != "" {
		renderer := report.PNGRenderer{Width: cfg.Chart.Width, Height: cfg.Chart.Height}
		if err := writeCharts(renderer, rep.Charts, pngDir); err != nil {
			return fmt.Errorf("failed to write charts: %w", err)
		}
	}
	return nil
}

func runPass(driver *dashboard.Driver, host *dashboard.Collector, name string, data []byte) (*dashboard.Pass, error) {
	_, pass, err := driver.Run(&dashboard.NamedFile{Name: name, Data: data}, host)
	if err != nil {
		return nil, fmt.Errorf("report failed: %w", err)
	}
	return pass, nil
}

// writeCharts writes overall.png, comparative.png and one region-G<n>.png per
// region facet. Charts without data are skipped.
func writeCharts(renderer report.PNGRenderer, charts []models.ChartSpec, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	files := make(map[string]models.ChartSpec)
	for _, spec := range charts {
		if spec.FacetBy == "" {
			files[spec.ID+".png"] = spec
			continue
		}
		for _, facet := range spec.CategoryOrder {
			if single, ok := report.Facet(spec, facet); ok {
				files["region-"+facet+".png"] = single
			}
		}
	}

	for name, spec := range files {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		err = renderer.Render(f, spec)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if errors.Is(err, report.ErrEmptyChart) {
			os.Remove(f.Name())
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
