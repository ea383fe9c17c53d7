package main

import "github.com/jsphweid/ssfconv/cmd"

func main() {
	cmd.Execute()
}
