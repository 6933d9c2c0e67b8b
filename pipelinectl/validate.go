package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meikuraledutech/pipeline"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errCyclic = errors.New("one or more pipelines contain a cycle")

// report is the outcome for one input file.
type report struct {
	File  string   `json:"file"`
	Cycle []string `json:"cycle,omitempty"`
	pipeline.Result
}

func runValidate(cmd *cobra.Command, args []string) error {
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}

	reports := make([]report, 0, len(args))
	for _, name := range args {
		p, err := loadFile(name, cmd.InOrStdin())
		if err != nil {
			return err
		}
		reports = append(reports, check(name, p))
	}

	if err := writeReports(cmd.OutOrStdout(), outputFormat, reports); err != nil {
		return err
	}

	if strict {
		for _, r := range reports {
			if !r.IsDAG {
				return errCyclic
			}
		}
	}
	return nil
}

func check(name string, p *pipeline.Pipeline) report {
	r := report{File: name, Result: p.Validate()}
	if !r.IsDAG {
		r.Cycle = pipeline.NewGraph(p.Nodes, p.Edges).FindCycle()
	}
	return r
}

func loadFile(name string, stdin io.Reader) (*pipeline.Pipeline, error) {
	if name == "-" {
		return decodePipeline(stdin)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := decodePipeline(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// decodePipeline accepts JSON or YAML. YAML is a superset of JSON, so the
// document is parsed as YAML and re-encoded as JSON for the opaque fields.
func decodePipeline(r io.Reader) (*pipeline.Pipeline, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty pipeline document")
		}
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}

	var p pipeline.Pipeline
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}
	return &p, nil
}

func writeReports(w io.Writer, format string, reports []report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		fmt.Fprintf(w, "%s: %s\n", r.File, r.Message)
		if len(r.Cycle) > 0 {
			fmt.Fprintf(w, "  cycle: %s\n", strings.Join(r.Cycle, " -> "))
		}
	}
	return nil
}
