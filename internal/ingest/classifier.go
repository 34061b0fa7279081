// Package ingest turns heterogeneous spreadsheet exports of drone part lists
// into schema-shaped catalogue records.
package ingest

import "strings"

// labelMapping one raw spreadsheet label mapped to a canonical category slug
type labelMapping struct {
	Label    string
	Category string
}

// categoryTable maps the many label variants seen across the source sheets to
// canonical category slugs. Matching is substring-based and FIRST MATCH WINS,
// so the order below is load-bearing: "BAT AIR" must be tried before any
// shorter label that could also hit the same cell.
var categoryTable = []labelMapping{
	{"FRAME", "frames"},
	{"400K FRAME", "frames"},

	{"MOTORS", "motors"},
	{"400K MOTORS", "motors"},

	{"SERVOS", "servos"},

	{"STACK", "stacks"},
	{"EXTRA STACK", "stacks"},
	{"400K STACK", "stacks"},

	{"EXTRA FC", "flight_controllers"},

	{"ESC", "escs"},
	{"8S MODE ESC", "escs"},

	{"AIO", "aio_boards"},
	{"PDB", "pdbs"},
	{"VOLTAGE REGULATORS", "voltage_regulators"},

	{"BAT AIR", "batteries"},
	{"BAT GROUND", "batteries"},
	{"BAT TX", "batteries"},

	{"BAT CHARGER", "battery_chargers"},

	{"PROPS", "propellers"},
	{"400K PROPS", "propellers"},

	{"CAM", "fpv_cameras"},
	{"CAM1", "fpv_cameras"},

	{"DIGITAL CAM", "digital_video_cameras"},
	{"THERMAL", "thermal_cameras"},
	{"ACTION CAM", "action_cameras"},

	{"VTX", "video_transmitters"},
	{"VTX SPECIAL", "video_transmitters"},

	{"RX", "receivers"},
	{"TX", "transmitters"},
	{"ANT", "antennas"},
	{"ANTENNA AIR", "antennas"},
	{"ANTENNA GROUND", "antennas"},

	{"GPS", "gps"},
	{"GOGGLES", "goggles"},
	{"GOG", "goggles"},
}

// Classify decides whether a row describes a component and which category it
// belongs to. Cell 0 is scanned first; cell 1 is the fallback because one of
// the source sheets shifts its category column. Rows that match nothing are
// not components and are skipped without diagnostics.
func Classify(row []string) (string, bool) {
	if len(row) == 0 {
		return "", false
	}

	col0 := strings.ToUpper(strings.TrimSpace(row[0]))
	for _, m := range categoryTable {
		if strings.Contains(col0, m.Label) {
			return m.Category, true
		}
	}

	if len(row) > 1 {
		col1 := strings.ToUpper(strings.TrimSpace(row[1]))
		for _, m := range categoryTable {
			if strings.Contains(col1, m.Label) {
				return m.Category, true
			}
		}
	}

	return "", false
}
