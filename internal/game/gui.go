package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"playground/internal/sim"
)

// Debug panel colors, a dark theme over the blue backdrop
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 220)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)
	colorAccent    = rl.NewColor(108, 99, 255, 255)

	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

const (
	panelWidth   = 180
	panelPadding = 10
	buttonHeight = 28
)

func initGuiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// panelRect is the debug panel in the top right corner
func panelRect(screenWidth int32) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(screenWidth) - panelWidth - panelPadding,
		Y:      panelPadding,
		Width:  panelWidth,
		Height: 2*buttonHeight + 3*panelPadding,
	}
}

// drawPanel draws the spawn buttons and queues a command for each click
func (g *Game) drawPanel() {
	panel := panelRect(int32(rl.GetScreenWidth()))
	rl.DrawRectangleRec(panel, colorBgPanel)

	button := rl.Rectangle{
		X:      panel.X + panelPadding,
		Y:      panel.Y + panelPadding,
		Width:  panel.Width - 2*panelPadding,
		Height: buttonHeight,
	}
	if gui.Button(button, "Create sphere") {
		g.queue(sim.CommandSpawnSphere)
	}
	button.Y += buttonHeight + panelPadding
	if gui.Button(button, "Create box") {
		g.queue(sim.CommandSpawnBox)
	}
}

func (g *Game) drawHUD() {
	rl.DrawFPS(10, 10)
	reg := g.sim.Registry
	rl.DrawText(fmt.Sprintf("Boxes: %d  Spheres: %d", len(reg.Boxes()), len(reg.Spheres())), 10, 35, 18, colorTextPrimary)

	impact := g.sim.LastImpact()
	if impact.Frame > 0 {
		rl.DrawText(fmt.Sprintf("Last impact: %.2f m/s", impact.Velocity), 10, 58, 18, colorTextSecondary)
	}
	rl.DrawText(fmt.Sprintf("Sub-steps: %d  Culled: %d", g.stats.SubSteps, g.renderer.Culled()), 10, 81, 16, colorTextMuted)
	rl.DrawText("Drag to orbit, wheel to zoom, any key to kick the sphere", 10, int32(rl.GetScreenHeight())-26, 16, colorTextMuted)
}
