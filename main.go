// =============================================================================
// SKUID Intake Report - Main Entry Point
// =============================================================================
//
// USAGE:
//   intake [file.xml]   - Write intakeXMLResults.csv for a SKUID page export
//   intake version      - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, extraction, join and report writing
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/skuid-intake-report/cmd"
)

func main() {
	cmd.Execute()
}
