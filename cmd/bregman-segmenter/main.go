package main

import "bregman-segmenter/internal/cli"

func main() {
	cli.Execute()
}
