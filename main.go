package main

import "gallery-sync/cmd"

func main() {
	cmd.Execute()
}
