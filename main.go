package main

import "github.com/pelagos-io/remora/cmd"

func main() {
	cmd.Execute()
}
