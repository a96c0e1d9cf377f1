// faqtool maintains the CSV knowledge base consumed by the chat service.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "faqtool",
	Short: "Maintain the legal FAQ knowledge base",
	Long: `faqtool generates and rewrites the CSV knowledge base that the chat
service loads at startup. Use "generate" to seed a fresh FAQ file and
"relabel" to rewrite the keyword column of an existing one.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
