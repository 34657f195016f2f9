// flowctl — инструмент командной строки для управления Flowhub
// через HTTP API.
//
// Использование:
//
//	flowctl [--json] [--debug] <command> <subcommand> [flags]
//
// Команды:
//
//	workflow    Управление workflows
//	execution   Просмотр executions
//	credential  Управление credentials
//	tag         Управление tags
//	variable    Управление variables
//	audit       Security audit
//
// Подключение настраивается через окружение (FLOWCTL_BASE_URL,
// FLOWCTL_API_KEY) или файл flowctl.json, см. internal/config.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/flowctl/internal/cli"
	"github.com/shaiso/flowctl/internal/client"
	"github.com/shaiso/flowctl/internal/config"
	"github.com/shaiso/flowctl/internal/telemetry"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var jsonOutput bool
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "flowctl",
		Short:         "flowctl — Flowhub workflow automation CLI",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Профиль резолвится лениво: --help и --version работают без
	// настроенного окружения.
	clientFn := func() (*client.Client, error) {
		profile, err := config.Resolve(config.OS())
		if err != nil {
			return nil, err
		}
		logger := telemetry.SetupLogger(debug || profile.Debug)
		if debug {
			profile.Debug = true
		}
		return client.New(profile, logger), nil
	}
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewWorkflowCmd(clientFn, outputFn),
		cli.NewExecutionCmd(clientFn, outputFn),
		cli.NewCredentialCmd(clientFn, outputFn),
		cli.NewTagCmd(clientFn, outputFn),
		cli.NewVariableCmd(clientFn, outputFn),
		cli.NewAuditCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", client.Diagnose(err))
		os.Exit(1)
	}
}
