package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shaiso/flowctl/internal/client"
)

// ClientFunc лениво создаёт клиент API: профиль резолвится при первом
// обращении, чтобы --help работал без настроенного окружения.
type ClientFunc func() (*client.Client, error)

// OutputFunc лениво создаёт Output после парсинга PersistentFlags.
type OutputFunc func() *Output

var workflowHeaders = []string{"ID", "NAME", "ACTIVE", "UPDATED"}

func workflowRow(wf client.Workflow) []string {
	return []string{wf.ID, wf.Name, strconv.FormatBool(wf.Active), wf.UpdatedAt}
}

// NewWorkflowCmd создаёт группу команд для управления workflows.
func NewWorkflowCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Manage workflows",
	}

	cmd.AddCommand(
		newWorkflowListCmd(clientFn, outputFn),
		newWorkflowShowCmd(clientFn, outputFn),
		newWorkflowCreateCmd(clientFn, outputFn),
		newWorkflowUpdateCmd(clientFn, outputFn),
		newWorkflowDeleteCmd(clientFn, outputFn),
		newWorkflowActivateCmd(clientFn, outputFn),
		newWorkflowDeactivateCmd(clientFn, outputFn),
		newWorkflowRunCmd(clientFn, outputFn),
		newWorkflowExportCmd(clientFn, outputFn),
		newWorkflowImportCmd(clientFn, outputFn),
	)

	return cmd
}

func newWorkflowListCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var active string
	var name string
	var allPages bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflows",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			opts := client.ListWorkflowsOpts{Name: name}
			if cmd.Flags().Changed("active") {
				b, err := strconv.ParseBool(active)
				if err != nil {
					return fmt.Errorf("invalid value for --active: %s", active)
				}
				opts.Active = &b
			}

			var workflows []client.Workflow
			if allPages {
				workflows, err = c.ListAllWorkflows(cmd.Context(), opts)
			} else {
				var page *client.WorkflowPage
				page, err = c.ListWorkflows(cmd.Context(), opts)
				if page != nil {
					workflows = page.Workflows
				}
			}
			if err != nil {
				return err
			}

			rows := make([][]string, len(workflows))
			for i, wf := range workflows {
				rows[i] = workflowRow(wf)
			}
			out.Print(workflowHeaders, rows, workflows)
			return nil
		},
	}

	cmd.Flags().StringVar(&active, "active", "", "Filter by active status (true/false)")
	cmd.Flags().StringVar(&name, "name", "", "Filter by name")
	cmd.Flags().BoolVar(&allPages, "all-pages", false, "Fetch all pages")

	return cmd
}

func newWorkflowShowCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show workflow details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			wf, err := c.GetWorkflow(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out.Print(workflowHeaders, [][]string{workflowRow(*wf)}, wf)
			return nil
		},
	}
}

func newWorkflowCreateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a workflow from a definition file",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			def, err := readJSONFile(file)
			if err != nil {
				return err
			}

			wf, err := c.CreateWorkflow(cmd.Context(), def)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Workflow created: %s", wf.ID))
			out.Print(workflowHeaders, [][]string{workflowRow(*wf)}, wf)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to workflow definition JSON (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newWorkflowUpdateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a workflow definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			def, err := readJSONFile(file)
			if err != nil {
				return err
			}

			wf, err := c.UpdateWorkflow(cmd.Context(), args[0], def)
			if err != nil {
				return err
			}

			out.Success("Workflow updated")
			out.Print(workflowHeaders, [][]string{workflowRow(*wf)}, wf)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to workflow definition JSON (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newWorkflowDeleteCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if err := c.DeleteWorkflow(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Workflow deleted: %s", args[0]))
			return nil
		},
	}
}

func newWorkflowActivateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "activate [ID]",
		Short: "Activate a workflow (or all workflows with --all)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if !all {
				if len(args) != 1 {
					return fmt.Errorf("workflow ID or --all is required")
				}
				wf, err := c.ActivateWorkflow(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out.Success(fmt.Sprintf("Workflow activated: %s", wf.ID))
				return nil
			}

			// Строго последовательно, в порядке сервера: порядок
			// и rate-limiting остаются детерминированными
			inactive := false
			workflows, err := c.ListAllWorkflows(cmd.Context(), client.ListWorkflowsOpts{Active: &inactive})
			if err != nil {
				return err
			}
			for _, wf := range workflows {
				if _, err := c.ActivateWorkflow(cmd.Context(), wf.ID); err != nil {
					return fmt.Errorf("failed to activate %s: %w", wf.ID, err)
				}
				out.Success(fmt.Sprintf("Workflow activated: %s", wf.ID))
			}
			out.Success(fmt.Sprintf("Activated %d workflows", len(workflows)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Activate every inactive workflow, one by one")

	return cmd
}

func newWorkflowDeactivateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			wf, err := c.DeactivateWorkflow(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out.Success(fmt.Sprintf("Workflow deactivated: %s", wf.ID))
			return nil
		},
	}
}

func newWorkflowRunCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "run ID",
		Short: "Run a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			var inputs map[string]any
			if data != "" {
				if err := json.Unmarshal([]byte(data), &inputs); err != nil {
					return fmt.Errorf("invalid --data: %w", err)
				}
			}

			res, err := c.RunWorkflow(cmd.Context(), args[0], inputs)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Execution started: %s", res.ExecutionID))
			out.Print([]string{"EXECUTION_ID"}, [][]string{{res.ExecutionID}}, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "Run inputs as a JSON object")

	return cmd
}

func newWorkflowExportCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export the full workflow definition to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			def, err := c.ExportWorkflow(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if outFile == "" || outFile == "-" {
				out.JSON(def)
				return nil
			}

			pretty, err := json.MarshalIndent(def, "", "  ")
			if err != nil {
				return err
			}
			pretty = append(pretty, '\n')
			if err := os.WriteFile(outFile, pretty, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outFile, err)
			}
			out.Success(fmt.Sprintf("Workflow %s exported to %s", args[0], outFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "", "Output file (default: stdout)")

	return cmd
}

func newWorkflowImportCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var file string
	var id string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a workflow definition from a file",
		Long:  "Creates a new workflow from the file, or replaces an existing one when --id is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			def, err := readJSONFile(file)
			if err != nil {
				return err
			}

			var wf *client.Workflow
			if id != "" {
				wf, err = c.UpdateWorkflow(cmd.Context(), id, def)
			} else {
				wf, err = c.CreateWorkflow(cmd.Context(), def)
			}
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Workflow imported: %s", wf.ID))
			out.Print(workflowHeaders, [][]string{workflowRow(*wf)}, wf)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to workflow definition JSON (required)")
	cmd.Flags().StringVar(&id, "id", "", "Existing workflow ID to replace")
	cmd.MarkFlagRequired("file")

	return cmd
}

// readJSONFile читает файл и проверяет, что это валидный JSON.
func readJSONFile(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s is not valid JSON", path)
	}
	return json.RawMessage(data), nil
}
