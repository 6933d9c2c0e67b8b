package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/pipeline"
	"github.com/meikuraledutech/pipeline/postgres"
)

func main() {
	ctx := context.Background()

	// ── Validate a few editor pipelines ───────────────────────────────
	samples := []struct {
		name string
		p    pipeline.Pipeline
	}{
		{"empty", pipeline.Pipeline{}},
		{"input → llm → output", pipeline.Pipeline{
			Nodes: []pipeline.Node{
				{ID: "input-1", Data: json.RawMessage(`{"inputName": "question"}`)},
				{ID: "llm-1", Data: json.RawMessage(`{"model": "gpt-4"}`)},
				{ID: "output-1", Data: json.RawMessage(`{"outputName": "answer"}`)},
			},
			Edges: []pipeline.Edge{
				{ID: "e1", Source: "input-1", Target: "llm-1"},
				{ID: "e2", Source: "llm-1", Target: "output-1"},
			},
		}},
		{"two loose nodes", pipeline.Pipeline{
			Nodes: []pipeline.Node{{ID: "text-1"}, {ID: "note-1"}},
		}},
		{"feedback loop", pipeline.Pipeline{
			Nodes: []pipeline.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
			Edges: []pipeline.Edge{
				{ID: "e1", Source: "a", Target: "b"},
				{ID: "e2", Source: "b", Target: "c"},
				{ID: "e3", Source: "c", Target: "a"},
			},
		}},
	}

	results := make([]pipeline.Result, 0, len(samples))
	for _, s := range samples {
		res := s.p.Validate()
		results = append(results, res)

		fmt.Printf("%-22s %s\n", s.name+":", res.Message)
		if cycle := pipeline.NewGraph(s.p.Nodes, s.p.Edges).FindCycle(); cycle != nil {
			fmt.Printf("%-22s %s\n", "", strings.Join(cycle, " → "))
		}
	}

	// ── Record the verdicts (optional) ────────────────────────────────
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		fmt.Println("\nDATABASE_URL is not set, skipping history")
		return
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	// Wire up the postgres implementation behind the HistoryStore interface.
	var store pipeline.HistoryStore = postgres.New(pool)

	if err := store.CreateSchema(ctx); err != nil {
		log.Fatalf("schema: %v", err)
	}
	fmt.Println("\nschema created")

	ids := make([]string, 0, len(results))
	for _, res := range results {
		id, err := store.SaveValidation(ctx, pipeline.NewRecord("example", res))
		if err != nil {
			log.Fatalf("save validation: %v", err)
		}
		ids = append(ids, id)
	}
	fmt.Printf("recorded %d verdicts\n", len(ids))

	// ── List + summarize ──────────────────────────────────────────────
	records, err := store.ListValidations(ctx, 10)
	if err != nil {
		log.Fatalf("list validations: %v", err)
	}
	fmt.Printf("\nrecent validations (%d):\n", len(records))
	printJSON(records)

	sum, err := store.Summarize(ctx)
	if err != nil {
		log.Fatalf("summarize: %v", err)
	}
	fmt.Println("\nsummary:")
	printJSON(sum)

	// ── Cleanup ───────────────────────────────────────────────────────
	for _, id := range ids {
		if err := store.DeleteValidation(ctx, id); err != nil {
			log.Fatalf("delete: %v", err)
		}
	}
	fmt.Println("\nverdicts deleted")
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	fmt.Println(string(out))
}
