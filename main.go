package main

import (
	"os"

	"KolamBoard/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
