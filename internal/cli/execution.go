package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/flowctl/internal/client"
)

var executionHeaders = []string{"ID", "WORKFLOW", "STATUS", "STARTED", "STOPPED"}

func executionRow(ex client.Execution) []string {
	return []string{ex.ID, ex.WorkflowID, ex.Status, ex.StartedAt, ex.StoppedAt}
}

// NewExecutionCmd создаёт группу команд для просмотра executions.
func NewExecutionCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execution",
		Short: "Inspect workflow executions",
	}

	cmd.AddCommand(
		newExecutionListCmd(clientFn, outputFn),
		newExecutionShowCmd(clientFn, outputFn),
		newExecutionDeleteCmd(clientFn, outputFn),
		newExecutionRetryCmd(clientFn, outputFn),
	)

	return cmd
}

func newExecutionListCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var workflowID string
	var status string
	var allPages bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List executions",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			opts := client.ListExecutionsOpts{WorkflowID: workflowID, Status: status}

			var executions []client.Execution
			if allPages {
				executions, err = c.ListAllExecutions(cmd.Context(), opts)
			} else {
				var page *client.ExecutionPage
				page, err = c.ListExecutions(cmd.Context(), opts)
				if page != nil {
					executions = page.Executions
				}
			}
			if err != nil {
				return err
			}

			rows := make([][]string, len(executions))
			for i, ex := range executions {
				rows[i] = executionRow(ex)
			}
			out.Print(executionHeaders, rows, executions)
			return nil
		},
	}

	cmd.Flags().StringVar(&workflowID, "workflow", "", "Filter by workflow ID")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (success, error, running, waiting)")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "Fetch all pages")

	return cmd
}

func newExecutionShowCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show execution details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			ex, err := c.GetExecution(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Print(executionHeaders, [][]string{executionRow(*ex)}, ex)
			return nil
		},
	}
}

func newExecutionDeleteCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an execution record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if err := c.DeleteExecution(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Execution deleted: %s", args[0]))
			return nil
		},
	}
}

func newExecutionRetryCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "retry ID",
		Short: "Retry a finished execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			res, err := c.RetryExecution(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Execution started: %s", res.ExecutionID))
			out.Print([]string{"EXECUTION_ID"}, [][]string{{res.ExecutionID}}, res)
			return nil
		},
	}
}
