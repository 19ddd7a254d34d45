package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUploadCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload one file and print the response",
		Long: `Selects <file>, posts it once to the configured endpoint and prints the
response: pretty-printed JSON on success, the error message otherwise.
The exit status is 1 when the upload failed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			component := opts.newComponent(opts.logger)
			defer component.Close()

			if err := component.SelectPath(args[0]); err != nil {
				return err
			}

			resp, _ := component.Upload(cmd.Context())
			if text := resp.Render(); text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			if resp.IsError() {
				return errUploadFailed
			}
			return nil
		},
	}
}
