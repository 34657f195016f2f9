package cli

import (
	"github.com/spf13/cobra"
)

// NewAuditCmd создаёт группу команд security audit.
func NewAuditCmd(clientFn ClientFunc, outputFn OutputFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Security audit",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate a security audit report",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := clientFn()
			if err != nil {
				return err
			}
			out := outputFn()

			report, err := c.GenerateAudit(cmd.Context())
			if err != nil {
				return err
			}

			// Структура отчёта зависит от сервера, выводим как есть
			out.JSON(report)
			return nil
		},
	})

	return cmd
}
