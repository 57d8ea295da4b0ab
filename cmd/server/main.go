package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remiges-tech/logharbour/logharbour"
	"github.com/remiges-tech/slownie/config"
	"github.com/remiges-tech/slownie/logger"
	"github.com/remiges-tech/slownie/metrics"
	"github.com/remiges-tech/slownie/numwordsvc"
	"github.com/remiges-tech/slownie/router"
	"github.com/remiges-tech/slownie/service"
	"github.com/remiges-tech/slownie/units"
)

type AppConfig struct {
	AppServerPort    string `json:"app_server_port"`
	MetricsPort      string `json:"metrics_port,omitempty"`
	LogPriority      string `json:"log_priority,omitempty"`
	UnitsFile        string `json:"units_file,omitempty"`
	RequestTimeoutMs int    `json:"request_timeout_ms,omitempty"`
}

const defaultRequestTimeout = 10 * time.Second

func main() {
	configSystem := flag.String("configSource", "file", "The configuration system to use (file or rigel)")
	configFilePath := flag.String("configFile", "./config.json", "The path to the configuration file")
	etcdEndpoints := flag.String("etcdEndpoints", "localhost:2379", "Comma separated etcd endpoints used by Rigel")
	rigelApp := flag.String("app", "slownie", "The Rigel application name")
	rigelModule := flag.String("module", "numwordsvc", "The Rigel module name")
	rigelVersion := flag.Int("version", 1, "The Rigel schema version")
	rigelConfigName := flag.String("configName", "dev", "The name of the configuration")
	flag.Parse()

	appConfig := AppConfig{
		LogPriority: logger.DefaultPriority,
	}

	var configSource config.Config
	switch *configSystem {
	case "file":
		configSource = &config.File{ConfigFilePath: *configFilePath}
	case "rigel":
		rigelClient, err := config.NewRigelClient(config.RigelOptions{
			EtcdEndpoints: *etcdEndpoints,
			App:           *rigelApp,
			Module:        *rigelModule,
			Version:       *rigelVersion,
			ConfigName:    *rigelConfigName,
		})
		if err != nil {
			log.Fatalf("Error creating rigel client: %v", err)
		}
		configSource = &config.Rigel{Client: rigelClient}
	default:
		log.Fatalf("Unknown configuration system: %s", *configSystem)
	}

	if err := config.Load(configSource, &appConfig); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Logger
	fallbackWriter := logharbour.NewFallbackWriter(os.Stdout, os.Stderr)
	lh, err := logger.LoadLogger("slownie", appConfig.LogPriority, fallbackWriter)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}

	// Units catalogue: the built-in one, extended by units_file if set
	catalogue := units.Default()
	if appConfig.UnitsFile != "" {
		f, err := os.Open(appConfig.UnitsFile)
		if err != nil {
			log.Fatalf("Error opening units file: %v", err)
		}
		extra, err := units.Load(f)
		f.Close()
		if err != nil {
			log.Fatalf("Error loading units file: %v", err)
		}
		catalogue = catalogue.Merge(extra)
	}
	lh.Info().LogActivity("units catalogue loaded", map[string]any{"units": catalogue.Len()})

	// Metrics
	m := metrics.NewPrometheusMetrics()
	if appConfig.MetricsPort != "" {
		go func() {
			if err := m.StartMetricsServer(appConfig.MetricsPort); err != nil {
				lh.Error(err).LogActivity("metrics server stopped", nil)
			}
		}()
	}

	timeout := defaultRequestTimeout
	if appConfig.RequestTimeoutMs > 0 {
		timeout = time.Duration(appConfig.RequestTimeoutMs) * time.Millisecond
	}

	// Router
	r := gin.New()
	r.Use(router.LogRequest(router.NewLogHarbourAdapter(lh)))
	r.Use(gin.Recovery())
	r.Use(router.TimeoutMiddleware(timeout))

	s := service.NewService(r).
		WithConfig(configSource).
		WithLogHarbour(lh).
		WithMetrics(m).
		WithDependency(numwordsvc.DepUnits, catalogue)
	numwordsvc.RegisterHandlers(s)

	lh.Info().LogActivity("starting server", map[string]any{"port": appConfig.AppServerPort, "timeout": timeout.String()})
	if err := r.Run(":" + appConfig.AppServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
