// Command validate provides a small CLI that validates map template JSON
// files in the maps directory. It checks:
//   - JSON structure and the engine's template rules (dimensions, terrain,
//     building placement, HQ count, starting units)
//   - Connectivity: every headquarters can be reached on foot from every
//     other, so no slot starts walled off
//
// It prints a concise report per file and exits non-zero if any template is
// invalid.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashfront/skirmish-server/game/engine"
)

// ValidationResult captures the outcome of validating a single file. If
// Valid is true, Errors holds informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateTemplate loads and validates a single map template JSON file.
func validateTemplate(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var tpl engine.MapTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := tpl.Validate(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if errs := validateConnectivity(&tpl); len(errs) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, errs...)
		return result
	}

	factories := 0
	cities := 0
	for _, b := range tpl.Buildings {
		switch b.Kind {
		case engine.BuildingFactory:
			factories++
		case engine.BuildingCity:
			cities++
		}
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", tpl.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", tpl.Width, tpl.Height))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %d", tpl.SlotCount()))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Factories: %d, cities: %d", factories, cities))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting units: %d", len(tpl.Units)))
	return result
}

// validateConnectivity flood-fills on foot from the first headquarters and
// reports any headquarters the fill never reaches. A template that passes
// engine validation can still strand a slot behind water.
func validateConnectivity(tpl *engine.MapTemplate) []string {
	terrain := tpl.Terrain()

	var hqs []engine.Position
	for _, b := range tpl.Buildings {
		if b.Kind == engine.BuildingHQ {
			hqs = append(hqs, b.Pos())
		}
	}
	if len(hqs) < 2 {
		return nil
	}

	passable := func(p engine.Position) bool {
		if p.X < 0 || p.Y < 0 || p.X >= tpl.Width || p.Y >= tpl.Height {
			return false
		}
		stats, ok := engine.TerrainStats(terrain[p.Y][p.X])
		return ok && stats.Passable
	}

	visited := map[engine.Position]bool{}
	queue := []engine.Position{hqs[0]}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited[cur] {
			continue
		}
		visited[cur] = true

		for _, d := range []engine.Position{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
			n := engine.Position{X: cur.X + d.X, Y: cur.Y + d.Y}
			if !visited[n] && passable(n) {
				queue = append(queue, n)
			}
		}
	}

	var errs []string
	for _, hq := range hqs[1:] {
		if !visited[hq] {
			errs = append(errs, fmt.Sprintf("Connectivity failure: HQ at (%d,%d) unreachable on foot from HQ at (%d,%d)",
				hq.X, hq.Y, hqs[0].X, hqs[0].Y))
		}
	}
	return errs
}

// main scans the maps directory (or the one given as the first argument) for
// *.json files and validates each one, printing a concise report and exiting
// with non-zero status if any are invalid.
func main() {
	mapsDir := "maps"
	if len(os.Args) > 1 {
		mapsDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(mapsDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding map files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No map files found in %s\n", mapsDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateTemplate(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Println("  ❌ " + err)
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All map templates are valid!")
	} else {
		fmt.Println("❌ Some map templates have errors")
		os.Exit(1)
	}
}
