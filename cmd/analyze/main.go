package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kerem-kaynak/german-analysis/internal/config"
	"github.com/kerem-kaynak/german-analysis/internal/logging"
	"github.com/kerem-kaynak/german-analysis/internal/metrics"
	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
)

// outputToken is the JSON form of one emitted token.
type outputToken struct {
	Term     string `json:"term"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Position int    `json:"position"`
	Type     string `json:"type"`
	Keyword  bool   `json:"keyword,omitempty"`
}

func main() {
	envFile := flag.String("env", ".env", "Path to .env file")
	configPath := flag.String("config", "", "Analyzer configuration (default $ANALYSIS_CONFIG or analysis.yaml)")
	analyzerName := flag.String("analyzer", "default", "Analyzer to run")
	terms := flag.Bool("terms", false, "Print distinct terms instead of tokens")
	metricsAddr := flag.String("serve-metrics", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	path := *configPath
	if path == "" {
		path = os.Getenv("ANALYSIS_CONFIG")
	}
	if path == "" {
		path = "analysis.yaml"
	}

	loader := config.NewLoader(filepath.Dir(path), nil)
	cfg, err := loader.Config(filepath.Base(path))
	switch {
	case errors.Is(err, fs.ErrNotExist) && *configPath == "":
		cfg = config.Default()
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, closer := logging.New(os.Stderr, logOptions(cfg.Logging))
	defer closer.Close()
	loader.Logger = logger

	registry := config.NewRegistry(loader)
	a, err := cfg.BuildAnalyzer(registry, *analyzerName)
	if err != nil {
		logger.Error("building analyzer failed", "err", err)
		os.Exit(1)
	}
	logger.Info("analyzer ready", "analyzer", *analyzerName, "config", path)

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		a = m.Instrument(*analyzerName, a)
		for name, seg := range registry.Segmenters() {
			m.WatchSegmenter(name, seg)
		}
		go serveMetrics(logger, *metricsAddr, reg)
	}

	// If text provided as argument, analyze and exit
	if flag.NArg() > 0 {
		printResult(a, strings.Join(flag.Args(), " "), *terms, "")
		return
	}

	// Interactive mode
	fmt.Printf("German analysis (interactive mode, analyzer %q)\n", *analyzerName)
	fmt.Println("Type a word or sentence, press Enter to analyze. Ctrl+C to exit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := scanner.Text()
		if text == "" {
			continue
		}
		printResult(a, text, *terms, "  ")
		fmt.Println()
	}
}

func logOptions(l config.Logging) logging.Options {
	opts := logging.Options{Level: l.Level, File: l.File, JSON: l.JSON}
	if v := os.Getenv("ANALYSIS_LOG_LEVEL"); v != "" {
		opts.Level = v
	}
	if v := os.Getenv("ANALYSIS_LOG_FILE"); v != "" {
		opts.File = v
	}
	return opts
}

func printResult(a *analysis.Analyzer, text string, terms bool, indent string) {
	var output []byte
	if terms {
		output, _ = json.Marshal(a.Terms(text))
	} else {
		output, _ = json.Marshal(toOutput(a.Analyze(text)))
	}
	fmt.Printf("%s%s\n", indent, output)
}

func toOutput(tokens []analysis.Token) []outputToken {
	out := make([]outputToken, 0, len(tokens))
	pos := 0
	for _, tok := range tokens {
		pos += tok.PosInc
		out = append(out, outputToken{
			Term:     tok.Term,
			Start:    tok.Start,
			End:      tok.End,
			Position: pos,
			Type:     tok.Type.String(),
			Keyword:  tok.Keyword,
		})
	}
	return out
}

func serveMetrics(logger *slog.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("serving metrics", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server error", "err", err)
	}
}
