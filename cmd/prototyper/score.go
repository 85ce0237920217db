package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbourn/go-idea-prototyper/internal/scoring"
)

func newScoreCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "score <idea text>",
		Short: "Score an idea and print the assessment as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("idea text must not be blank")
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(scoring.Score(text))
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print single-line JSON")
	return cmd
}
