package main

import (
	"github.com/lmehner/blockworld/internal/cli"
)

func main() {
	cli.Execute()
}
