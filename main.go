package main

import "github.com/famdash/famdash/cmd"

func main() {
	cmd.Execute()
}
