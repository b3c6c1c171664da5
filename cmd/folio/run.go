package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aretw0/folio/internal/presentation/tui"
	"github.com/aretw0/folio/pkg/adapters/file"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/ports"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [input-file]",
	Short: "Generate the three pages for one product description",
	Long: `Reads a raw product description from the given file (or stdin when omitted or "-"),
runs the workflow and writes product_page.json, faq.json and comparison_page.json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		degrade, _ := cmd.Flags().GetBool("degrade")
		pretty, _ := cmd.Flags().GetBool("pretty")
		if !cmd.Flags().Changed("out") {
			out = cfg.Output.Dir
		}

		path := "-"
		if len(args) > 0 {
			path = args[0]
		}
		raw, err := readInput(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		engine, err := newEngine(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		state, runErr := generate(ctx, engine, raw, degrade)
		if runErr == nil {
			if err := file.WriteDir(out, state.Artifacts); err != nil {
				return fmt.Errorf("failed to write artifacts: %w", err)
			}
			logger.Info("artifacts written", "run_id", state.RunID, "dir", out)
		}

		if err := printSummary(cmd.OutOrStdout(), state, runErr, pretty); err != nil {
			return err
		}
		return runErr
	},
}

// generate runs the workflow and, when degrade is set, renders the best
// attempt of a run that exhausted its retries.
func generate(ctx context.Context, engine ports.ContentEngine, raw string, degrade bool) (domain.State, error) {
	state, err := engine.Run(ctx, raw)
	var runErr *domain.RunError
	if !degrade || !errors.As(err, &runErr) || runErr.Kind != domain.KindExhaustedRetries || runErr.Best == nil {
		return state, err
	}
	return engine.Degrade(ctx, *runErr.Best)
}

func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("input is empty")
	}
	return string(data), nil
}

func printSummary(w io.Writer, state domain.State, runErr error, pretty bool) error {
	md := tui.Summary(state, runErr)
	if !pretty {
		_, err := fmt.Fprint(w, md)
		return err
	}
	render, err := tui.NewRenderer(100)
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, out)
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("out", "o", "output", "Directory receiving the three documents")
	runCmd.Flags().Bool("degrade", false, "Render the best attempt when the quality gate keeps failing")
	runCmd.Flags().Bool("pretty", tui.IsTerminal(os.Stdout), "Render the summary with terminal styling")
}
