// Package main is the entry point for TheQuest, a desktop launcher that creates
// scaffolded project folders and lists recent projects per language.
package main

import "github.com/Akaiko1/thequest/internal/cli"

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd
var version = "dev"

func main() {
	cli.Execute(version)
}
