package main

import "github.com/filmlens/filmlens/internal/cmd"

func main() {
	cmd.Execute()
}
