package main

import (
	"rsgame-bundler/cli"
)

func main() {
	cli.Start()
}
