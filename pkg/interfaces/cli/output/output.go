// Package output renders a solved production plan for the CLI. Graph
// rendering itself (a DOT-language emitter) is an external collaborator;
// this package only prints the typed solution graph the extractor
// produces.
package output

import (
	"encoding/json"
	"fmt"

	"github.com/gtnh-planner/factoryplan/pkg/application/dto"
)

// Config controls how a solved plan is rendered.
type Config struct {
	Format  string // "text" or "json"
	Verbose bool
}

// Generate writes result to stdout in the requested format.
func Generate(result *dto.SolveResult, config Config) error {
	switch config.Format {
	case "json":
		return generateJSON(result)
	case "", "text":
		return generateText(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateJSON(result *dto.SolveResult) error {
	data, err := json.MarshalIndent(result.Graph, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal solution graph: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func generateText(result *dto.SolveResult, config Config) error {
	graph := result.Graph

	fmt.Printf("Production Plan\n")
	fmt.Printf("===============\n\n")

	fmt.Printf("Machines: %d  Sources: %d  Sinks: %d  Flows: %d\n\n",
		len(graph.Machines), len(graph.Sources), len(graph.Sinks), len(graph.ItemFlows))

	if len(graph.Machines) > 0 {
		fmt.Printf("Machines:\n")
		fmt.Printf("%-28s %-10s\n", "Name", "Count")
		fmt.Printf("%-28s %-10s\n", "----------------------------", "----------")
		for _, m := range graph.Machines {
			fmt.Printf("%-28s %-10.4f\n", m.Name, m.Quantity)
		}
		fmt.Println()
	}

	if len(graph.Sources) > 0 {
		fmt.Printf("Raw material sources:\n")
		for _, s := range graph.Sources {
			fmt.Printf("  %-24s %10.4f/s\n", s.Item, -s.Quantity)
		}
		fmt.Println()
	}

	if len(graph.Sinks) > 0 {
		fmt.Printf("Outputs:\n")
		for _, s := range graph.Sinks {
			fmt.Printf("  %-24s %10.4f/s\n", s.Item, s.Quantity)
		}
		fmt.Println()
	}

	if config.Verbose {
		fmt.Printf("Solver status: %s\n", result.Solution.Status)
		fmt.Printf("Declared variables: %d  Constraints: %d\n",
			len(result.ConstraintSystem.Vars()), len(result.ConstraintSystem.Constraints))
		fmt.Printf("Item flows:\n")
		for _, f := range graph.ItemFlows {
			fmt.Printf("  %-28s -> %-28s  %-16s %10.4f/s\n", f.Start, f.End, f.Item, f.Quantity)
		}
	}

	return nil
}
