package main

import "github.com/valderique/kvgo/cmd"

func main() {
	cmd.Execute()
}
