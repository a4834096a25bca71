package main

import "github.com/notargets/gosa/cmd"

func main() {
	cmd.Execute()
}
