package main

import (
	"github.com/hcs-labs/hub/internal/cli"
)

func main() {
	cli.Execute()
}
