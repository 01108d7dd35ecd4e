package main

import "github.com/safetruck/fleetsight/cmd"

func main() {
	cmd.Execute()
}
