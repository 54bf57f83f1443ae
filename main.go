package main

import "github.com/lukman83/showcase/cmd"

func main() {
	cmd.Execute()
}
