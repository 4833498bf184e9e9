package main

import "github.com/rustyeddy/tradetracker/internal/cli"

func main() {
	cli.Execute()
}
