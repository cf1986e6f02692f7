package main

import "github.com/khrees2412/cvgen/cmd"

func main() {
	cmd.Execute()
}
