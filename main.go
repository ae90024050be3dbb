package main

import "nephscope/cmd"

func main() {
	cmd.Execute()
}
