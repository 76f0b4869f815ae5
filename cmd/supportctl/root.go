// supportctl is the operations CLI: import ticket exports into the
// database and run one-shot team performance analyses.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "supportctl",
	Short: "Team performance tooling for support ticket exports",
	Long: "supportctl loads CSV/XLSX ticket exports into the ticket database\n" +
		"and runs the scoring pipeline over them, producing ranked team reports.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.Version = version
}

func main() {
	_ = godotenv.Load(".env")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
