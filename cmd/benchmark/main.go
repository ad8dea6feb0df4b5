package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kerem-kaynak/german-analysis/internal/config"
	"github.com/kerem-kaynak/german-analysis/internal/logging"
	"github.com/kerem-kaynak/german-analysis/pkg/analysis"
	"github.com/kerem-kaynak/german-analysis/pkg/decompound"
	"github.com/kerem-kaynak/german-analysis/pkg/folding"
	"github.com/kerem-kaynak/german-analysis/pkg/hyphen"
	"github.com/kerem-kaynak/german-analysis/pkg/worddelimiter"
)

const (
	warmup   = 1000
	boxWidth = 62

	// ANSI color codes
	colorReset  = "\033[0m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

var (
	line       = strings.Repeat("─", boxWidth)
	iterations = 100000
)

func main() {
	configPath := flag.String("config", "analysis.yaml", "Analyzer configuration")
	analyzerName := flag.String("analyzer", "default", "Analyzer to benchmark")
	flag.IntVar(&iterations, "n", iterations, "Iterations per benchmark")
	flag.Parse()

	logger, closer := logging.New(os.Stderr, logging.Options{Level: os.Getenv("ANALYSIS_LOG_LEVEL")})
	defer closer.Close()

	// Load analyzer
	fmt.Printf("Loading analyzer %q from %s... ", *analyzerName, *configPath)
	start := time.Now()
	loader := config.NewLoader(filepath.Dir(*configPath), logger)
	cfg, err := loader.Config(filepath.Base(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	registry := config.NewRegistry(loader)
	a, err := cfg.BuildAnalyzer(registry, *analyzerName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("done (%v)\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("Iterations: %d (warmup: %d)\n", iterations, warmup)
	fmt.Println("Reference: 1 second = 1,000,000,000 ns")
	fmt.Println()

	// Test data
	singleWord := "Wärmedämmung"
	longCompound := "Wärmedämmverbundsystem"
	sentence := "Der Brandschutzkonzept und die Wärmedämmung der Stahlbetondecke"

	// Full chain benchmarks
	printHeader("FULL CHAIN THROUGHPUT")
	bench("Single word", func() { a.Analyze(singleWord) })
	bench("Long compound", func() { a.Analyze(longCompound) })
	bench("Sentence (8 words)", func() { a.Analyze(sentence) })
	printFooter()
	fmt.Println()

	for name, seg := range registry.Segmenters() {
		benchSegmenter(name, seg, singleWord)
	}

	// Filter components
	printHeader("FILTER COMPONENTS")
	bench("Word delimiter split", func() {
		worddelimiter.Split("Wi-Fi4Home", worddelimiter.DefaultFlags, nil)
	})
	bench("Hyphen expand", func() {
		hyphen.Expand("Ost-West-Verbindung", hyphen.DefaultHyphens, true)
	})
	bench("Fold", func() {
		folding.Fold("Straße Café")
	})
	bench("Normalize (nfkc_cf)", func() {
		folding.Normalize("Wärmedämmung", folding.NFKCCF)
	})
	sortKeys, err := folding.NewCollationFactory(folding.Collation{Language: "de", Strength: folding.Primary})
	if err == nil {
		bench("Collation key", func() {
			analysis.Drain(sortKeys.Create(analysis.NewSliceStream(analysis.Token{Term: singleWord, End: 12, PosInc: 1})))
		})
	}
	printFooter()
	fmt.Println()

	// Normalizer steps
	printHeader("NORMALIZER STEPS BREAKDOWN")
	norm := analysis.NewNormalizer()
	bench("Normalizer (full)", func() {
		norm.Normalize("Wärmedämmung")
	})
	bench("NFKD decompose", func() {
		analysis.NFKDDecompose("Wärmedämmung")
	})
	bench("Remove control chars", func() {
		analysis.RemoveControlChars("Wärmedämmung")
	})
	bench("Lowercase", func() {
		analysis.Lowercase("Wärmedämmung")
	})
	bench("Normalize quotes", func() {
		analysis.NormalizeQuotes("„Wärmedämmung“")
	})
	bench("Expand ligatures", func() {
		analysis.ExpandLigatures("Wärmedämmung")
	})
	bench("Convert Eszett to ss", func() {
		analysis.ConvertEszett("Größe")
	})
	bench("Remove combining marks", func() {
		analysis.RemoveCombiningMarks("Wa\u0308rme")
	})
	bench("Stem German", func() {
		analysis.StemGerman("warme")
	})
	printFooter()
}

func benchSegmenter(name string, seg *decompound.Segmenter, word string) {
	printHeader("SEGMENTER " + strings.ToUpper(name))
	bench("Dictionary lookup", func() {
		seg.Dictionary().Contains("dämmung")
	})
	seg.ClearCache()
	seg.Segment(word)
	bench("Split (cache hit)", func() {
		seg.Segment(word)
	})
	bench("Split (cache miss)", func() {
		seg.ClearCache()
		seg.Segment(word)
	})
	hits, misses := seg.CacheStats()
	printTitleRow(fmt.Sprintf("  cache: %d hits, %d misses, %d entries", hits, misses, seg.CacheLen()))
	printFooter()
	fmt.Println()
}

func bench(name string, fn func()) {
	for i := 0; i < warmup; i++ {
		fn()
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		fn()
	}
	elapsed := time.Since(start)

	opsPerSec := float64(iterations) / elapsed.Seconds()
	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)

	displayName := name
	if len(displayName) > 26 {
		displayName = displayName[:26]
	}

	// Pad the plain string, then colorize
	plain := fmt.Sprintf("  %-26s %10.0f ops/sec %8.0f ns", displayName, opsPerSec, nsPerOp)
	padded := padLine(plain)

	colored := fmt.Sprintf("  %-26s %s%10.0f%s ops/sec %s%8.0f%s ns",
		displayName,
		colorGreen, opsPerSec, colorReset,
		colorYellow, nsPerOp, colorReset)

	extraPad := len(padded) - len(plain)
	if extraPad > 0 {
		colored += strings.Repeat(" ", extraPad)
	}

	fmt.Println(colorDim + "│" + colorReset + colored + colorDim + "│" + colorReset)
}

func padLine(content string) string {
	if len(content) >= boxWidth {
		return content[:boxWidth]
	}
	return content + strings.Repeat(" ", boxWidth-len(content))
}

func printHeader(title string) {
	fmt.Println(colorDim + "┌" + line + "┐" + colorReset)
	printTitleRow("  " + title)
	fmt.Println(colorDim + "├" + line + "┤" + colorReset)
}

func printFooter() {
	fmt.Println(colorDim + "└" + line + "┘" + colorReset)
}

func printTitleRow(content string) {
	fmt.Println(colorDim + "│" + colorReset + colorCyan + padLine(content) + colorReset + colorDim + "│" + colorReset)
}
