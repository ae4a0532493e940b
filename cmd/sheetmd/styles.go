package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// stderr is where every styled message goes; stdout carries only the document.
var stderr = lipgloss.NewRenderer(os.Stderr)

var (
	errorStyle = stderr.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	warnStyle = stderr.NewStyle().
			Foreground(lipgloss.Color("#FFB84D")).
			Bold(true)
)
