package main

import (
	"github.com/lunarweave/modctl/cmd"
)

func main() {
	cmd.Execute()
}
