package main

import "github.com/andrescamacho/hive-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
