// cmd/themectl/main.go
package main

import (
	"os"

	"github.com/codr1/storefront/cmd/themectl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
