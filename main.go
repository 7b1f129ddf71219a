package main

import "scalemap/atlas/cmd"

func main() {
	cmd.Execute()
}
