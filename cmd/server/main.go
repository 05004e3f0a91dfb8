package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"lineworks.id/machine-monitor-service/pkg/common"
	"lineworks.id/machine-monitor-service/pkg/db"
	monHttp "lineworks.id/machine-monitor-service/pkg/http"
	"lineworks.id/machine-monitor-service/pkg/monitor"
	"lineworks.id/machine-monitor-service/pkg/serial"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	monDbType := os.Getenv(common.EnvKeyMonDBType)
	switch monDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown MON_DB_TYPE: " + monDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyMonHttpHostPort))
	serialPort := strings.TrimSpace(os.Getenv(common.EnvKeyMonSerialPort))
	exportDir := strings.TrimSpace(os.Getenv(common.EnvKeyMonExportDir))
	if exportDir == "" {
		exportDir = "data_log_monitoring"
	}

	serialBaud := 115200
	if baudStr := os.Getenv(common.EnvKeyMonSerialBaud); baudStr != "" {
		if serialBaud, err = strconv.Atoi(baudStr); err != nil {
			log.Fatal("Invalid MON_SERIAL_BAUD, should be an int value")
		}
	}

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyMonDefaultRate), 64); err != nil {
		log.Fatal("Invalid MON_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyMonDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid MON_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	monCore := monitor.New(*dbInstance, exportDir)
	monCore.WithServices(monitor.ServiceOpts{
		Directory: monCore.GetIDirectory(),
		Writer:    monCore.GetIWriter(),
		Exporter:  monCore.GetIExporter(),
	})

	var pipeline *monitor.Pipeline
	if serialPort != "" {
		reader := serial.NewReader(serial.DefaultConfig(serialPort, serialBaud))
		pipeline = monitor.NewPipeline(monCore, reader)

		logger.Info("Starting ingestion pipeline",
			zap.String("serial_port", serialPort), zap.Int("baud", serialBaud))
		if err := pipeline.Start(); err != nil {
			log.Fatalf("failed to start ingestion pipeline: %v", err)
		}

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sig
			logger.Info("Signal received, stopping pipeline")
			pipeline.Stop()
			os.Exit(0)
		}()
	} else {
		logger.Info("MON_SERIAL_PORT not set, running without ingestion pipeline")
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &monHttp.RestfulServer{
		Server:           gin.Default(),
		Mon:              monCore,
		Pipeline:         pipeline,
		RateLimiterStore: monHttp.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
