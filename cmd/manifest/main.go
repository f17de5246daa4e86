package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/manifest/internal/cli"
	"github.com/alexanderramin/manifest/internal/imagegen"
	"github.com/alexanderramin/manifest/internal/intelligence"
	"github.com/alexanderramin/manifest/internal/llm"
	"github.com/alexanderramin/manifest/internal/session"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	log := newLogger()

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(log)
	}
	client := llm.NewOllamaClient(llmCfg, observer)
	refiner := intelligence.NewRefineService(client)
	images := imagegen.NewPredictClient(imagegen.LoadConfig())
	threshold := similarityThreshold()

	app := &cli.App{
		Version: version,
		NewSession: func(ctx context.Context) (*session.Session, error) {
			// The reference index is required before any routing; a
			// failed bootstrap aborts session creation.
			index, err := intelligence.BuildReferenceIndex(ctx, client)
			if err != nil {
				return nil, fmt.Errorf("preparing role definitions (is Ollama running with %q installed?): %w",
					llmCfg.EmbedModel, err)
			}
			router := intelligence.NewRouter(client, refiner, index, threshold)
			return session.NewSession(refiner, router, images), nil
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	if lvl, err := logrus.ParseLevel(os.Getenv("MANIFEST_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}
	return log
}

func similarityThreshold() float64 {
	if v := os.Getenv("MANIFEST_SIMILARITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
			return f
		}
	}
	return intelligence.DefaultSimilarityThreshold
}
