package main

import "github.com/shiptool/ship/cmd"

func main() {
	cmd.Execute()
}
