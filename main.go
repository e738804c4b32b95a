package main

import "github.com/zcached/go-zcached/cmd"

func main() {
	cmd.Execute()
}
