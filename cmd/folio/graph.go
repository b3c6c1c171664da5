package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/folio/internal/presentation/graph"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the workflow graph",
	Long:  `Outputs the transition table as a Mermaid diagram (graph TD) or as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		engine, err := newEngine(cfg, logger)
		if err != nil {
			return err
		}
		transitions := engine.Inspect()

		switch format {
		case "mermaid":
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(domain.StepExtract, transitions, nil))
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(transitions)
		default:
			return fmt.Errorf("unknown format: %s. Supported: mermaid, json", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("format", "mermaid", "Output format: 'mermaid' or 'json'")
}
