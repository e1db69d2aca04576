package main

import "searchlab/internal/cli"

func main() {
	cli.Execute()
}
