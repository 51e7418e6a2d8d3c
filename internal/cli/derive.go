// Package cli provides palette derivation commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/palette/internal/batch"
	"github.com/opencode-ai/palette/internal/logging"
	"github.com/opencode-ai/palette/internal/palette"
	"github.com/opencode-ai/palette/internal/theme"
)

var (
	deriveMode       string
	deriveBackground string
	derivePrimary    string
	deriveSecondary  string
	deriveFile       string
	deriveStrict     bool
)

func init() {
	rootCmd.AddCommand(deriveCmd)

	deriveCmd.Flags().StringVar(&deriveMode, "mode", "", "theme mode: dark or light (default: config theme.mode)")
	deriveCmd.Flags().StringVar(&deriveBackground, "background", "", "background color (default: paper of the mode preset)")
	deriveCmd.Flags().StringVar(&derivePrimary, "primary", "", "primary color (default: mode preset)")
	deriveCmd.Flags().StringVar(&deriveSecondary, "secondary", "", "secondary color (default: mode preset)")
	deriveCmd.Flags().StringVarP(&deriveFile, "file", "f", "", "YAML file of requests to derive in batch")
	deriveCmd.Flags().BoolVar(&deriveStrict, "strict", false, "fail when a color cannot reach AA contrast")
}

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive accessible primary and secondary colors",
	Long: `Derive primary and secondary colors that meet WCAG AA contrast against a
background. Passing colors are returned unchanged; failing colors are
lightened (dark mode) or darkened (light mode) step by step.`,
	Example: `  # Fix a near-black primary on the dark paper
  palette derive --mode dark --background "#213137" --primary "#1a1a1a" --secondary "#dc004e"

  # Derive many palettes from a file
  palette derive --file requests.yaml --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if deriveFile != "" {
			return runDeriveBatch(cmd.Context(), out, cmd.ErrOrStderr(), deriveFile)
		}
		return runDerive(out)
	},
}

// DeriveOutput is the payload of `palette derive`.
type DeriveOutput struct {
	Name    string          `json:"name,omitempty"`
	Request palette.Request `json:"request"`
	Result  palette.Result  `json:"result"`
}

func runDerive(out io.Writer) error {
	req, err := deriveRequestFromFlags()
	if err != nil {
		return err
	}

	res, err := newDeriver().DerivePalette(req)
	if err != nil {
		return err
	}
	warnUnresolved("", res)

	output := DeriveOutput{Request: req, Result: res}
	if IsJSONOutput() || IsJSONLOutput() {
		if err := WriteOutput(out, output); err != nil {
			return err
		}
	} else if err := writeDeriveTable(out, []DeriveOutput{output}); err != nil {
		return err
	}

	if deriveStrict {
		return res.Err()
	}
	return nil
}

func runDeriveBatch(ctx context.Context, out, errOut io.Writer, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	file, err := batch.LoadFile(path)
	if err != nil {
		return err
	}

	progress := startBatchProgress(errOut, len(file.Items))
	results, err := newDeriver().DeriveAll(ctx, file.Requests())
	if err != nil {
		progress.Fail(err)
		return err
	}
	progress.Done(results)

	outputs := make([]DeriveOutput, len(results))
	var firstErr error
	for i, res := range results {
		entry := file.Items[i]
		outputs[i] = DeriveOutput{Name: entry.Name, Request: entry.Request, Result: res}
		warnUnresolved(entry.Name, res)
		if firstErr == nil && res.Err() != nil {
			firstErr = fmt.Errorf("%s: %w", entry.Name, res.Err())
		}
	}

	if IsJSONOutput() || IsJSONLOutput() {
		if err := WriteOutput(out, outputs); err != nil {
			return err
		}
	} else if err := writeDeriveTable(out, outputs); err != nil {
		return err
	}

	if deriveStrict {
		return firstErr
	}
	return nil
}

func deriveRequestFromFlags() (palette.Request, error) {
	modeValue := deriveMode
	if modeValue == "" {
		modeValue = GetConfig().Theme.Mode
	}
	mode, err := palette.ParseMode(modeValue)
	if err != nil {
		return palette.Request{}, err
	}

	preset := theme.PresetFor(mode)
	req := palette.Request{
		Mode:       mode,
		Background: preset.Paper,
		Primary:    preset.Primary,
		Secondary:  preset.Secondary,
	}
	if deriveBackground != "" {
		req.Background = deriveBackground
	}
	if derivePrimary != "" {
		req.Primary = derivePrimary
	}
	if deriveSecondary != "" {
		req.Secondary = deriveSecondary
	}
	return req, nil
}

func writeDeriveTable(out io.Writer, outputs []DeriveOutput) error {
	named := len(outputs) > 1 || (len(outputs) == 1 && outputs[0].Name != "")

	headers := []string{"ROLE", "INPUT", "OUTPUT", "STEPS", "RATIO", "STATUS"}
	if named {
		headers = append([]string{"NAME", "MODE", "BACKGROUND"}, headers...)
	}

	rows := make([][]string, 0, len(outputs)*2)
	for _, o := range outputs {
		roles := []struct {
			name   string
			output string
			adj    palette.Adjustment
		}{
			{"primary", o.Result.Primary, o.Result.PrimaryAdjustment},
			{"secondary", o.Result.Secondary, o.Result.SecondaryAdjustment},
		}
		for _, role := range roles {
			row := []string{
				role.name,
				role.adj.Original,
				role.output,
				strconv.Itoa(role.adj.Steps),
				formatRatio(role.adj.Ratio),
				formatAdjustment(role.adj),
			}
			if named {
				row = append([]string{o.Name, string(o.Request.Mode), o.Request.Background}, row...)
			}
			rows = append(rows, row)
		}
	}
	return writeTable(out, headers, rows)
}

func warnUnresolved(name string, res palette.Result) {
	roles := res.Unresolved()
	if len(roles) == 0 {
		return
	}
	logger := logging.Component("cli")
	for _, role := range roles {
		adj := res.PrimaryAdjustment
		color := res.Primary
		if role == "secondary" {
			adj = res.SecondaryAdjustment
			color = res.Secondary
		}
		logger.Warn().
			Str("request", name).
			Str("role", role).
			Str("input", adj.Original).
			Str("fallback", color).
			Float64("ratio", adj.Ratio).
			Msg("contrast could not reach AA")
	}
}
