// Package genmon renders audit results for the xfce4-genmon panel plugin:
// a <txt> status span plus the diagnostic trace as a <tool> tooltip.
package genmon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sinkwatch/agent/internal/audit"
)

const (
	colorRed   = "Red"
	colorWhite = "White"
)

// status maps an outcome to its panel text and color.
func status(res audit.Result) (text, color string) {
	switch res.Outcome {
	case audit.OutcomeConsistent:
		return strconv.Itoa(res.Rate), colorWhite
	case audit.OutcomeIdle:
		return "Idle", colorWhite
	case audit.OutcomeDeviceNotFound:
		return "N/A", colorWhite
	case audit.OutcomeVolumeMismatch:
		return "Vol Err", colorRed
	case audit.OutcomeAmbiguousSources:
		return "Src Err", colorRed
	case audit.OutcomeRateMismatch:
		return "Freq Err", colorRed
	default:
		return "Err", colorRed
	}
}

// Render formats the result as genmon markup. The trace is escaped for the
// tooltip; the classification itself is never altered by rendering.
func Render(res audit.Result) string {
	tooltip := escape(strings.TrimSpace(strings.Join(res.Trace, "\n")))
	text, color := status(res)
	return fmt.Sprintf("<txt><span color='%s'>%s</span></txt><tool>%s</tool>", color, text, tooltip)
}

// RenderPlain formats the result as the bare status text without markup.
func RenderPlain(res audit.Result) string {
	text, _ := status(res)
	return text
}

// escape substitutes the XML special characters the tooltip markup reserves.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
