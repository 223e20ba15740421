package main

import "highlow-server/internal/cli"

func main() {
	cli.Execute()
}
