package main

import "github.com/milliele/pypub/cmd"

func main() {
	cmd.Execute()
}
