package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shaiso/flowctl/internal/client"
)

var credentialHeaders = []string{"ID", "NAME", "TYPE"}

func credentialRow(cred client.Credential) []string {
	return []string{cred.ID, cred.Name, cred.Type}
}

// NewCredentialCmd создаёт группу команд для управления credentials.
// Секреты сервер назад не возвращает, поэтому show отсутствует.
func NewCredentialCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage credentials",
	}

	cmd.AddCommand(
		newCredentialListCmd(clientFn, outputFn),
		newCredentialCreateCmd(clientFn, outputFn),
		newCredentialDeleteCmd(clientFn, outputFn),
	)

	return cmd
}

func newCredentialListCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			creds, err := c.ListCredentials(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, len(creds))
			for i, cred := range creds {
				rows[i] = credentialRow(cred)
			}
			out.Print(credentialHeaders, rows, creds)
			return nil
		},
	}
}

func newCredentialCreateCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a credential from a definition file",
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

			cred, err := c.CreateCredential(cmd.Context(), def)
			if err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Credential created: %s", cred.ID))
			out.Print(credentialHeaders, [][]string{credentialRow(*cred)}, cred)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Path to credential definition JSON (required)")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newCredentialDeleteCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			if err := c.DeleteCredential(cmd.Context(), args[0]); err != nil {
				return err
			}

			out.Success(fmt.Sprintf("Credential deleted: %s", args[0]))
			return nil
		},
	}
}
