package main

import "github.com/gshubitidze/rallysim/cmd"

func main() {
	cmd.Execute()
}
