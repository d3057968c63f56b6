package main

import "github.com/insightdelivered/campus-fund-tracker/cmd"

func main() {
	cmd.Execute()
}
