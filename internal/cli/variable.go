package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/flowctl/internal/client"
)

var variableHeaders = []string{"ID", "KEY", "VALUE"}

func variableRow(v client.Variable) []string {
	return []string{v.ID, v.Key, v.Value}
}

// NewVariableCmd создаёт группу команд для управления variables.
func NewVariableCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variable",
		Short: "Manage environment variables",
	}

	cmd.AddCommand(
		newVariableListCmd(clientFn, outputFn),
		newVariableCreateCmd(clientFn, outputFn),
		newVariableUpdateCmd(clientFn, outputFn),
		newVariableDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newVariableListCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			vars, err := c.ListVariables(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(vars))
			for i, v := range vars {
				rows[i] = variableRow(v)
			}
			out.Print(variableHeaders, rows, vars)
			return nil
		},
	}
}

func newVariableCreateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "create KEY VALUE",
		Short: "Create a variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			v, err := c.CreateVariable(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Variable created: %s", v.Key))
			out.Print(variableHeaders, [][]string{variableRow(*v)}, v)
			return nil
		},
	}
}

func newVariableUpdateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID KEY VALUE",
		Short: "Update a variable",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			v, err := c.UpdateVariable(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}

			out.Success("Variable updated")
			out.Print(variableHeaders, [][]string{variableRow(*v)}, v)
			return nil
		},
	}
}

func newVariableDeleteCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if err := c.DeleteVariable(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Variable deleted: %s", args[0]))
			return nil
		},
	}
}
