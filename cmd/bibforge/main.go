package main

import "bibforge/cmd"

func main() {
	cmd.Execute()
}
