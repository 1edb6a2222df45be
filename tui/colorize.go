package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/table"
)

// pre-rendered method strings, the hot path renders them once
var (
	renderedGET    string
	renderedPOST   string
	renderedPUT    string
	renderedPATCH  string
	renderedDELETE string
)

func init() {
	renderedGET = StyleMethodBlue.Render("GET")
	renderedPOST = StyleMethodYellow.Render("POST")
	renderedPUT = StyleMethodYellow.Render("PUT")
	renderedPATCH = StyleMethodYellow.Render("PATCH")
	renderedDELETE = StyleMethodRed.Render("DELETE")
}

// background of the selected row, see ApplyTableStyles
const selectedLineMarker = "48;2;42;26;42"

// ColorizeGridOutput colours methods, status codes, latency and timing bars in
// a rendered table. The header and the selected row are left alone so the
// selection background stays intact.
func ColorizeGridOutput(tableView string, cursor int, rows []table.Row) string {
	lines := strings.Split(tableView, "\n")

	// fallback when the selection style is not visible in the output
	var selectedCells []string
	if cursor >= 0 && cursor < len(rows) {
		for _, cell := range rows[cursor] {
			if cell != "" {
				selectedCells = append(selectedCells, cell)
			}
			if len(selectedCells) == 2 {
				break
			}
		}
	}

	var result strings.Builder
	result.Grow(len(tableView) + len(lines)*64)

	for i, line := range lines {
		isSelectedLine := strings.Contains(line, selectedLineMarker) || containsAll(line, selectedCells)

		// header is two lines: titles and the border under them
		if i >= 2 && !isSelectedLine {
			line = colorizeTimingGlyphs(line)
			line = colorizeHTTPMethods(line)
			line = colorizeStatusCodes(line)
			line = colorizeLatency(line)
		}

		result.WriteString(line)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}

	return result.String()
}

func containsAll(line string, parts []string) bool {
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if !strings.Contains(line, p) {
			return false
		}
	}
	return true
}

func colorizeHTTPMethods(line string) string {
	if strings.Contains(line, " GET ") {
		return strings.Replace(line, " GET ", " "+renderedGET+" ", 1)
	}
	if strings.Contains(line, " POST ") {
		return strings.Replace(line, " POST ", " "+renderedPOST+" ", 1)
	}
	if strings.Contains(line, " PUT ") {
		return strings.Replace(line, " PUT ", " "+renderedPUT+" ", 1)
	}
	if strings.Contains(line, " PATCH ") {
		return strings.Replace(line, " PATCH ", " "+renderedPATCH+" ", 1)
	}
	if strings.Contains(line, " DELETE ") {
		return strings.Replace(line, " DELETE ", " "+renderedDELETE+" ", 1)
	}
	return line
}

// colorizeStatusCodes colours the first " NNN " in the line: below 400 blue,
// 4xx yellow, 5xx red.
func colorizeStatusCodes(line string) string {
	for i := 0; i < len(line)-4; i++ {
		if line[i] == ' ' &&
			isDigit(line[i+1]) && isDigit(line[i+2]) && isDigit(line[i+3]) &&
			line[i+4] == ' ' {

			statusCode := int(line[i+1]-'0')*100 + int(line[i+2]-'0')*10 + int(line[i+3]-'0')
			statusStr := line[i+1 : i+4]

			var colored string
			switch {
			case statusCode >= 500:
				colored = StyleStatus5xx.Render(statusStr)
			case statusCode >= 400:
				colored = StyleStatus4xx.Render(statusStr)
			default:
				colored = StyleStatusOK.Render(statusStr)
			}
			return line[:i+1] + colored + line[i+4:]
		}
	}
	return line
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// colorizeLatency fades the first "1,234ms" token in the line
func colorizeLatency(line string) string {
	start := -1
	for i := 0; i <= len(line); i++ {
		if i < len(line) && line[i] != ' ' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if isLatency(line[start:i]) {
				return line[:start] + StyleLatencyFaint.Render(line[start:i]) + line[i:]
			}
			start = -1
		}
	}
	return line
}

// isLatency accepts digits with thousands separators followed by "ms"
func isLatency(s string) bool {
	value, ok := strings.CutSuffix(s, "ms")
	if !ok || value == "" || !isDigit(value[0]) {
		return false
	}
	for i := 0; i < len(value); i++ {
		if !isDigit(value[i]) && value[i] != ',' {
			return false
		}
	}
	return true
}

// colorizeTimingGlyphs paints every run of a phase glyph in that phase's colour
func colorizeTimingGlyphs(line string) string {
	if !strings.ContainsFunc(line, isPhaseGlyph) {
		return line
	}

	var out strings.Builder
	out.Grow(len(line) + 64)

	runes := []rune(line)
	for i := 0; i < len(runes); {
		phase, ok := phaseForGlyph(runes[i])
		if !ok {
			out.WriteRune(runes[i])
			i++
			continue
		}

		j := i
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		out.WriteString(PhaseStyle(phase).Render(string(runes[i:j])))
		i = j
	}

	return out.String()
}

func isPhaseGlyph(r rune) bool {
	_, ok := phaseForGlyph(r)
	return ok
}
