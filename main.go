package main

import (
	"os"

	"github.com/offering-catalog/catalog-api/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
