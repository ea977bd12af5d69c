package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/iconrules/cmd/iconrules"
	"github.com/arthur-debert/iconrules/pkg/ui/styles"
)

func main() {
	rootCmd := iconrules.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		theme := styles.Default(styles.NewRenderer(os.Stderr, nil))
		fmt.Fprintln(os.Stderr, theme.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
