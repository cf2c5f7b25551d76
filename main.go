package main

import (
	"os"

	"github.com/baonguyen-lq/ecommerce-faker-data-generator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
