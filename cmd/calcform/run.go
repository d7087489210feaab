package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-calcform/pkg/renderers/tui"
)

// newPromptDriver is replaced in tests.
var newPromptDriver = func(out io.Writer) tui.PromptDriver {
	return tui.NewSurveyDriver(out)
}

func runCmd(a *app) *cobra.Command {
	var (
		output      string
		maxAttempts int
	)

	cmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Fill in a template interactively",
		Long: `Prompt for every field of the template, then re-prompt only the fields that
failed validation until the input is accepted. Accepted data is printed in
the --output format.`,
		Example: `  calcform run tip
  calcform run password --output pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := tui.ParseOutputFormat(output)
			if !ok {
				return fmt.Errorf("invalid --output %q (expected json, form or pretty)", output)
			}

			h, err := a.build(args[0], tui.NewFactory())
			if err != nil {
				return err
			}
			session := tui.NewSession(
				tui.WithPromptDriver(newPromptDriver(cmd.ErrOrStderr())),
				tui.WithOutputFormat(format),
				tui.WithMaxAttempts(maxAttempts),
				tui.WithLogger(a.logger),
			)

			out, err := session.Run(cmd.Context(), h)
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
				return errInvalid
			}
			if err != nil {
				return err
			}
			return writeLine(cmd, out)
		},
	}
	cmd.Flags().StringVar(&output, "output", "json", "Output format (json, form, pretty)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Give up after this many rejected submissions (0 = unlimited)")
	return cmd
}
