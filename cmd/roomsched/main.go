package main

import "github.com/example/room-schedule/internal/interfaces/cli"

func main() {
	cli.Execute()
}
