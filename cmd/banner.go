package cmd

import (
    "image/color"

    "github.com/charmbracelet/lipgloss/v2"
    "github.com/pb33f/reqgrid/tui"
)

var bannerLines = []string{
    "@@@@@@@   @@@@@@@   @@@@@@   @@@@@@   @@@@@@@@",
    "@@@@@@@@  @@@@@@@@  @@@@@@@  @@@@@@@  @@@@@@@@",
    "@@!  @@@  @@!  @@@      @@@      @@@  @@!     ",
    "!@!  @!@  !@   @!@      @!@      @!@  !@!     ",
    "@!@@!@!   @!@!@!@   @!@!!@   @!@!!@   @!!!:!  ",
    "!!@!!!    !!!@!!!!  !!@!@!   !!@!@!   !!!!!:  ",
    "!!:       !!:  !!!      !!:      !!:  !!:     ",
    ":!:       :!:  !:!      :!:      :!:  :!:     ",
    " ::        :: ::::  :: ::::  :: ::::   ::     ",
    " :        :: : ::    : : :    : : :    :      ",
}

// RenderBanner returns the pb33f banner, fading from pink into purple,
// with the reqgrid link underneath.
func RenderBanner() string {
    var result string
    for i, line := range bannerLines {
        var c color.Color = tui.RGBPink
        if i >= len(bannerLines)/2 {
            c = tui.RGBPurple
        }
        style := lipgloss.NewStyle().
            Foreground(c).
            Bold(true)
        result += style.Render(line) + "\n"
    }

    subtitleStyle := lipgloss.NewStyle().
        Foreground(tui.RGBBlue).
        Italic(true)

    subtitle := subtitleStyle.Render("https://pb33f.io/reqgrid/")

    containerStyle := lipgloss.NewStyle().
        Align(lipgloss.Left).
        MarginBottom(1)

    return containerStyle.Render(result + subtitle)
}
