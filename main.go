package main

import "github.com/gaurav-prasanna/mdconvert/cmd"

func main() {
	cmd.Execute()
}
