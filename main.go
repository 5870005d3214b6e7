package main

import "github.com/lexlib/lexdb/cmd"

func main() {
	cmd.Execute()
}
