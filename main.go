package main

import "github.com/frahmantamala/attendance-tracker/cmd"

func main() {
	cmd.Execute()
}
