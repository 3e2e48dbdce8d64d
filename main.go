package main

import "github.com/rathore/toolbridge/cmd"

func main() {
	cmd.Execute()
}
