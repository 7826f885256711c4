// CycloDisc: Cycloidal Disc Generator
//
// A cross-platform desktop application for designing cycloidal reducer
// discs and exporting them as DXF, PDF, XLSX and CNC-ready GCode.
//
// Build:
//   go build -o cyclodisc ./cmd/cyclodisc
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o cyclodisc.exe ./cmd/cyclodisc
//   GOOS=darwin  GOARCH=amd64 go build -o cyclodisc-darwin ./cmd/cyclodisc
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/CycloDisc/internal/ui"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv("CYCLODISC_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	application := app.NewWithID("com.piwi3910.cyclodisc")
	window := application.NewWindow("CycloDisc")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1400, 850))
	window.CenterOnScreen()
	window.ShowAndRun()
}
