package cmd

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func bindFormatFlag(cmd *cobra.Command) {
	cmd.Flags().String("format", formatText, "Output format: text, json or yaml")
}

// writeOutput writes records as structured json or yaml, or lines one per row for text.
func writeOutput(out io.Writer, format string, lines []string, records interface{}) error {
	var data []byte
	var err error

	switch format {
	case formatText, "":
		for _, line := range lines {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
		return nil
	case formatJSON:
		data, err = sonic.MarshalIndent(records, "", "  ")
		data = append(data, '\n')
	case formatYAML:
		data, err = yaml.Marshal(records)
	default:
		return errors.Errorf("unsupported output format %q", format)
	}

	if err != nil {
		return errors.WithMessagef(err, "failed to encode %s output", format)
	}

	_, err = out.Write(data)
	return err
}
