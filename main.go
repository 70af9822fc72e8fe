package main

import "jupkit/cmd"

func main() {
	cmd.Execute()
}
