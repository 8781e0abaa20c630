package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hexpop/pkg/game/locale"
	"hexpop/pkg/game/renderer/palette"
	"hexpop/pkg/game/state"
)

// screenshotScale is the size of one cell in SVG pixels
const screenshotScale = 32

// SaveScreenshotHTML saves the board as an HTML page with an SVG drawing of
// the hex grid and returns the file path
func SaveScreenshotHTML(snap state.Snapshot, dir string) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("screenshot-%s.html", timestamp))

	if err := os.WriteFile(path, []byte(ScreenshotHTML(snap)), 0644); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return path, nil
}

// ScreenshotHTML renders the board as a standalone HTML page
func ScreenshotHTML(snap state.Snapshot) string {
	var b strings.Builder

	radius := snap.Layout.CellSize * screenshotScale / 2
	width := (float64(snap.Width)+0.5)*snap.Layout.CellSize*screenshotScale + 2
	height := (snap.LoseLineY+snap.Layout.RowHeight)*screenshotScale + radius*2

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>hexpop - Screenshot</title>
    <style>
        body {
            background-color: ` + hexColor(palette.Background.R, palette.Background.G, palette.Background.B) + `;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header { color: #bb86fc; font-size: 18px; margin-bottom: 10px; }
        .board { background-color: #0f0f1a; padding: 20px; border-radius: 8px; display: inline-block; }
        .messages { margin-top: 20px; border-top: 1px solid #333; padding-top: 10px; }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)

	fmt.Fprintf(&b, `    <div class="header">%s</div>`+"\n",
		html.EscapeString(fmt.Sprintf(locale.Get("STATUS_LINE"), snap.Score, snap.ShotsLeft, snap.Status)))

	b.WriteString(`    <div class="board">` + "\n")
	fmt.Fprintf(&b, `        <svg width="%.0f" height="%.0f">`+"\n", width, height)
	for _, bubble := range snap.Bubbles {
		x := (bubble.World.X-snap.Layout.Origin.X)*screenshotScale + radius + 1
		y := (bubble.World.Y-snap.Layout.Origin.Y)*screenshotScale + radius
		fmt.Fprintf(&b, `            <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n",
			x, y, radius-1, palette.Hex(bubble.Color))
	}
	lineY := (snap.LoseLineY-snap.Layout.Origin.Y)*screenshotScale + radius
	fmt.Fprintf(&b, `            <line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="%s" stroke-dasharray="4"/>`+"\n",
		lineY, width, lineY, hexColor(palette.LoseLine.R, palette.LoseLine.G, palette.LoseLine.B))
	b.WriteString("        </svg>\n")
	b.WriteString(`    </div>` + "\n")

	if len(snap.Messages) > 0 {
		b.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range snap.Messages {
			fmt.Fprintf(&b, `        <div class="message">%s</div>`+"\n", html.EscapeString(locale.Get(msg)))
		}
		b.WriteString(`    </div>` + "\n")
	}

	b.WriteString(`</body>
</html>
`)
	return b.String()
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
