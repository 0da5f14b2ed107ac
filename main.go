package main

import "github.com/charlerive/ivcalib/cmd"

func main() {
	cmd.Execute()
}
