package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goyaml "github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/theory/jsonpath"

	"github.com/goyamlpath/ypath/internal/config"
	"github.com/goyamlpath/ypath/internal/diagnostics"
	"github.com/goyamlpath/ypath/internal/exit"
	"github.com/goyamlpath/ypath/internal/output"
	"github.com/goyamlpath/ypath/internal/output/stdout"
	"github.com/goyamlpath/ypath/internal/ratelimit"
	"github.com/goyamlpath/ypath/internal/results"
	"github.com/goyamlpath/ypath/internal/ypath"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, exitResult := config.Parse(os.Args[1:])
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	switch cfg.Command {
	case config.CommandValidate:
		return runValidate(cfg)
	case config.CommandEval:
		return runEval(cfg)
	case config.CommandWatch:
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runWatch(ctx, cfg)
	default:
		exit.Errorf("Error: %v: %q", config.ErrUnknownCommand, cfg.Command).Print()
		return 1
	}
}

// debugSink returns a diagnostics.Sink tagged with a fresh run ID when
// cfg.Debug is set, the way the teacher's internal/template functions mint
// request-scoped UUIDs, or diagnostics.Discard otherwise.
func debugSink(debug bool) diagnostics.Sink {
	if !debug {
		return diagnostics.Discard
	}
	return diagnostics.NewWriterSink(os.Stderr, uuid.New().String())
}

func runValidate(cfg *config.Config) int {
	sink := debugSink(cfg.Debug)
	if _, err := ypath.CompileWithDiagnostics(cfg.Path, sink); err != nil {
		exit.Errorf("Error: %v", err).Print()
		return 1
	}
	exit.Success(fmt.Sprintf("%s: valid\n", cfg.Path)).Print()
	return 0
}

func runEval(cfg *config.Config) int {
	data, err := os.ReadFile(cfg.File)
	if err != nil {
		exit.Errorf("Error: failed to read %s: %v", cfg.File, err).Print()
		return 1
	}

	doc, err := ypath.LoadDocument(data)
	if err != nil {
		exit.Errorf("Error: failed to parse %s: %v", cfg.File, err).Print()
		return 1
	}

	sink := debugSink(cfg.Debug)
	expr, err := ypath.CompileWithDiagnostics(cfg.Path, sink)
	if err != nil {
		exit.Errorf("Error: %v", err).Print()
		return 1
	}

	matches := ypath.Eval(expr, doc.Root())

	if cfg.JSONPath != "" {
		return printJSONPathFiltered(cfg.Path, cfg.JSONPath, matches)
	}

	return printMatches(cfg.Path, cfg.JSON, matches)
}

func printMatches(path string, asJSON bool, matches *results.NodeSet) int {
	var formatter output.Formatter
	if asJSON {
		formatter = stdout.NewJSON(os.Stdout)
	} else {
		formatter = stdout.New()
	}

	if err := formatter.Format(path, matches); err != nil {
		exit.Errorf("Error: failed to print matches: %v", err).Print()
		return 1
	}
	return 0
}

// printJSONPathFiltered decodes every match to its canonical JSON value,
// then runs expr — an independent RFC 9535 JSONPath expression, not the
// path-expression grammar this tool otherwise implements — against the
// projected array.
func printJSONPathFiltered(path, expr string, matches *results.NodeSet) int {
	projected, err := projectMatches(matches)
	if err != nil {
		exit.Errorf("Error: %v", err).Print()
		return 1
	}

	query, err := jsonpath.Parse(expr)
	if err != nil {
		exit.Errorf("Error: invalid --jsonpath expression %q: %v", expr, err).Print()
		return 1
	}

	filtered := query.Select(projected)
	fmt.Printf("%s | %s: %d match(es)\n", path, expr, len(filtered))
	for _, v := range filtered {
		encoded, err := json.Marshal(v)
		if err != nil {
			exit.Errorf("Error: failed to encode filtered match: %v", err).Print()
			return 1
		}
		fmt.Println(string(encoded))
	}
	return 0
}

func projectMatches(matches *results.NodeSet) ([]any, error) {
	projected := make([]any, 0, matches.Len())
	for _, n := range matches.Nodes() {
		var decoded any
		if err := goyaml.Unmarshal([]byte(n.String()), &decoded); err != nil {
			return nil, fmt.Errorf("decode match for jsonpath filtering: %w", err)
		}
		projected = append(projected, decoded)
	}
	return projected, nil
}

func runWatch(ctx context.Context, cfg *config.Config) int {
	sink := debugSink(cfg.Debug)
	expr, err := ypath.CompileWithDiagnostics(cfg.Path, sink)
	if err != nil {
		exit.Errorf("Error: %v", err).Print()
		return 1
	}

	limiter := ratelimit.New(cfg.Rate)
	previous := map[string]struct{}{}

	for {
		if err := limiter.Wait(ctx); err != nil {
			return 0
		}

		current, err := evaluateOnce(cfg.File, expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", time.Now().Format(time.RFC3339), err)
			continue
		}

		printWatchDiff(cfg.Path, previous, current)
		previous = current

		if ctx.Err() != nil {
			return 0
		}
	}
}

func evaluateOnce(file string, expr *ypath.Expr) (map[string]struct{}, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	doc, err := ypath.LoadDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}

	matches := ypath.Eval(expr, doc.Root())
	current := make(map[string]struct{}, matches.Len())
	for _, n := range matches.Nodes() {
		current[n.String()] = struct{}{}
	}
	return current, nil
}

func printWatchDiff(path string, previous, current map[string]struct{}) {
	var added, removed []string
	for text := range current {
		if _, ok := previous[text]; !ok {
			added = append(added, text)
		}
	}
	for text := range previous {
		if _, ok := current[text]; !ok {
			removed = append(removed, text)
		}
	}

	if len(added) == 0 && len(removed) == 0 {
		return
	}

	fmt.Printf("%s %s: %d match(es)\n", time.Now().Format(time.RFC3339), path, len(current))
	for _, text := range added {
		fmt.Printf("+ %s\n", text)
	}
	for _, text := range removed {
		fmt.Printf("- %s\n", text)
	}
}
