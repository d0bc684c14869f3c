// Package main provides the sellerdesk CLI, a thin presentation layer
// over the seller console core in pkg/console.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
