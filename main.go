package main

import "blog-api/cmd"

func main() {
	cmd.Execute()
}
