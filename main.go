package main

import "github.com/ryan-gang/rawmail/cmd"

func main() {
	cmd.Execute()
}
