package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlava/openlava-go/internal/lavactl"
)

func submitCmd(a *lavactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit ./path/to/jobs.yaml",
		Short: "Submit jobs from a file",
		Long: `Submit jobs from a YAML or JSON file.

Example jobs.yaml:

queue: normal
jobs:
  - name: build
    command: make -j4
    processors:
      min: 4
    outFile: build.out
  - name: test
    command: make test
    dependCond: done("build")
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}
			return a.Submit(cmd.Context(), args[0], dryRun)
		},
	}
	cmd.Flags().Bool("dry-run", false, "validate the file without submitting")
	return cmd
}

func modifyCmd(a *lavactl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify jobId ./path/to/changes.yaml",
		Short: "Change the parameters of a job",
		Long: `Change the parameters of a submitted job. The file holds a single job, in the
format of an entry of a submit file, and only the fields it sets are changed.`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, a.Params)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Modify(cmd.Context(), args[0], args[1])
		},
	}
	return cmd
}
