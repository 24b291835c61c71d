package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jogardn/shopsim/internal/csvio"
	"github.com/jogardn/shopsim/internal/events"
	"github.com/jogardn/shopsim/internal/server"
	"github.com/jogardn/shopsim/internal/sim"
	"github.com/jogardn/shopsim/internal/sink"
)

const dateLayout = "2006-01-02"

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	seed := flag.Int64("seed", envInt64("SHOPSIM_SEED", 22), "random seed for the run")
	startStr := flag.String("start", getEnv("SHOPSIM_START", "2024-01-01"), "first simulated date (YYYY-MM-DD)")
	endStr := flag.String("end", getEnv("SHOPSIM_END", "2024-12-31"), "last simulated date (YYYY-MM-DD)")
	outDir := flag.String("out", getEnv("SHOPSIM_OUT", "data"), "output directory for CSV files")
	postgresDSN := flag.String("postgres-dsn", getEnv("SHOPSIM_POSTGRES_DSN", ""), "optional Postgres DSN to load the dataset into")
	kafkaBrokers := flag.String("kafka-brokers", getEnv("SHOPSIM_KAFKA_BROKERS", ""), "optional Kafka brokers to replay orders to")
	serveAddr := flag.String("serve", getEnv("SHOPSIM_SERVE", ""), "optional address for the preview server, e.g. :8080")
	flag.Parse()

	start, err := time.Parse(dateLayout, *startStr)
	if err != nil {
		logger.WithError(err).Fatal("Invalid start date")
	}
	end, err := time.Parse(dateLayout, *endStr)
	if err != nil {
		logger.WithError(err).Fatal("Invalid end date")
	}

	simulator, err := sim.New(sim.DefaultConfig(), logger)
	if err != nil {
		logger.WithError(err).Fatal("Invalid simulation config")
	}

	// Preview server starts before the run so clients can watch progress
	// over the websocket; data endpoints answer 503 until the run is done.
	var srv *http.Server
	var preview *server.Server
	if *serveAddr != "" {
		hub := server.NewHub(logger)
		go hub.Run()
		simulator.OnDay(hub.BroadcastDay)

		preview = server.New(hub, logger)
		srv = &http.Server{
			Addr:         *serveAddr,
			Handler:      preview.Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			logger.WithField("addr", *serveAddr).Info("Starting preview server")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Fatal("Failed to start preview server")
			}
		}()
	}

	dataset, err := simulator.Run(*seed, start, end)
	if err != nil {
		logger.WithError(err).Fatal("Simulation failed")
	}
	if preview != nil {
		preview.SetDataset(dataset)
	}

	if err := csvio.WriteDataset(dataset, *outDir); err != nil {
		logger.WithError(err).Fatal("Failed to write CSV output")
	}
	logger.WithField("dir", *outDir).Info("CSV files written")

	if *postgresDSN != "" {
		loader, err := sink.NewLoader(*postgresDSN, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Postgres")
		}
		if err := loader.Load(dataset); err != nil {
			loader.Close()
			logger.WithError(err).Fatal("Failed to load dataset into Postgres")
		}
		loader.Close()
	}

	if *kafkaBrokers != "" {
		producer, err := events.NewProducer(*kafkaBrokers, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to create Kafka producer")
		}
		if err := producer.PublishDataset(dataset); err != nil {
			producer.Close()
			logger.WithError(err).Fatal("Failed to replay dataset to Kafka")
		}
		producer.Close()
	}

	if srv == nil {
		return
	}

	// Keep serving the generated dataset until interrupted.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down preview server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Info("Preview server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
