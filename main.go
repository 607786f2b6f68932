package main

import "github.com/notargets/regencool/cmd"

func main() {
	cmd.Execute()
}
