package main

import "persontable/internal/cli"

func main() {
	cli.Execute()
}
