package main

import "github.com/kkpa/jbh/cmd"

func main() {
	cmd.Execute()
}
