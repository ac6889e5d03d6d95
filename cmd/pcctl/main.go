package main

import "github.com/mcoot/protocasual/internal/cli"

func main() {
	cli.Execute()
}
