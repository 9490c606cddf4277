package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/asaidimu/liteq/pkg/core"
	"github.com/asaidimu/liteq/pkg/facade"
	"github.com/asaidimu/liteq/pkg/sqlite"
)

const prompt = "liteq> "

// rowKeywords are the statement heads dispatched through FetchAll;
// everything else goes through Exec.
var rowKeywords = map[string]bool{
	"SELECT":  true,
	"WITH":    true,
	"PRAGMA":  true,
	"EXPLAIN": true,
	"VALUES":  true,
}

func runShell(dsn string, cfg shellConfig) error {
	engine, err := sqlite.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	defer engine.Close()

	f := facade.New(engine, nil)
	if cfg.Trace {
		f.SetTrace(log.New(os.Stderr, "[liteqsh] ", log.LstdFlags))
	}

	fmt.Printf("liteqsh — connected to %s\n", dsn)
	fmt.Println("Type '.help' for commands.")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if hist, err := os.Open(cfg.History); err == nil {
		line.ReadHistory(hist)
		hist.Close()
	}
	defer func() {
		if hist, err := os.Create(cfg.History); err == nil {
			line.WriteHistory(hist)
			hist.Close()
		}
	}()

	ctx := context.Background()
	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, ".") {
			if quit := dotCommand(ctx, f, engine, input); quit {
				return nil
			}
			continue
		}

		runStatement(ctx, f, engine, input)
	}
}

func dotCommand(ctx context.Context, f *facade.Facade, engine *sqlite.Engine, input string) (quit bool) {
	switch input {
	case ".quit", ".exit":
		return true
	case ".help":
		fmt.Println(".tables   list table names")
		fmt.Println(".changes  rows changed by the last statement")
		fmt.Println(".quit     exit the shell")
		fmt.Println("Anything else is executed as SQL.")
	case ".tables":
		err := f.QueryCallback(ctx, "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name", nil,
			func(row core.Row) error {
				fmt.Println(row["name"])
				return nil
			})
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
		}
	case ".changes":
		n, err := engine.RowsChanged(ctx)
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
			return false
		}
		fmt.Println(n)
	default:
		fmt.Printf("Unknown command %q. Type '.help'.\n", input)
	}
	return false
}

func runStatement(ctx context.Context, f *facade.Facade, engine *sqlite.Engine, stmt string) {
	head := strings.ToUpper(firstWord(stmt))

	if rowKeywords[head] {
		rows, err := f.FetchAll(ctx, stmt, nil)
		if err != nil {
			fmt.Printf("ERROR: %v\n", err)
			return
		}
		for _, row := range rows {
			fmt.Println(formatRow(row))
		}
		fmt.Printf("(%d rows)\n", len(rows))
		return
	}

	if err := f.Exec(ctx, stmt, nil); err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return
	}
	n, err := engine.RowsChanged(ctx)
	if err != nil {
		fmt.Printf("ERROR: %v\n", err)
		return
	}
	fmt.Printf("OK (%d rows changed)\n", n)
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// formatRow prints a row with its columns in a stable order. The Row
// map carries no column order, so keys are sorted.
func formatRow(row core.Row) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, row[k]))
	}
	return strings.Join(parts, "  ")
}
