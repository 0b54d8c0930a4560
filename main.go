/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "questrelay/cmd"

func main() {
	cmd.Execute()
}
