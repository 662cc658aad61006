// Mensa CLI — инструмент командной строки для управления сайтами,
// заказами, runner'ами и расписаниями через HTTP API.
//
// Использование:
//
//	mensa [--api-url URL] [--json] <command> <subcommand> [flags]
//
// Команды:
//
//	site      Управление сайтами
//	schedule  Управление расписаниями reset job'ов
//	runner    Выбор и назначение runner'ов
//	order     Управление заказами
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaiso/Mensa/internal/cli"
)

// version задаётся через ldflags при сборке.
var version = "dev"

func main() {
	var apiURL string
	var jsonOutput bool

	rootCmd := &cobra.Command{
		Use:           "mensa",
		Short:         "Mensa CLI — canteen pre-ordering tool",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	clientFn := func() *cli.Client { return cli.NewClient(apiURL) }
	outputFn := func() *cli.Output { return cli.NewOutput(jsonOutput) }

	rootCmd.AddCommand(
		cli.NewSiteCmd(clientFn, outputFn),
		cli.NewScheduleCmd(clientFn, outputFn),
		cli.NewRunnerCmd(clientFn, outputFn),
		cli.NewOrderCmd(clientFn, outputFn),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
