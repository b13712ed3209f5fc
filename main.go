package main

import (
	"github.com/opensyria/blockchain/cmd"
)

func main() {
	cmd.Execute()
}
