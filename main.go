package main

import "visitor-cli/cmd"

func main() {
	cmd.Execute()
}
