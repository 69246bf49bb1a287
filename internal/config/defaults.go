package config

// DefaultBasePath is the root directory holding one bucket per language.
const DefaultBasePath = "~/Projects"

// DefaultConfigDir is where config.yaml is looked up when --config is not given.
const DefaultConfigDir = "~/.config/thequest"

// DefaultEditor is the command used to open a project folder.
const DefaultEditor = "code"

// DefaultRecentLimit caps the recent projects list.
const DefaultRecentLimit = 50

// DefaultWindow matches the original window geometry.
var DefaultWindow = Window{
	Width:  1600,
	Height: 848,
}
