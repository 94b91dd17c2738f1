// Package pkg provides the core libraries for Ganttline chart generation.
//
// # Overview
//
// Ganttline turns a dependency-driven project plan into a static Gantt
// chart. The pkg directory is organized into five main areas:
//
//  1. [plan] - Plan tree model and the YAML loader
//  2. [schedule] - Validation, cycle detection, and date inference
//  3. [render] - Row flattening, dependency routing, chart composition
//  4. [pipeline] - Orchestration (parse → schedule → render)
//  5. [config] - Optional TOML style configuration
//
// # Architecture
//
// The typical data flow through Ganttline:
//
//	YAML plan file
//	         ↓
//	    [plan] package (parse into the plan tree)
//	         ↓
//	    [schedule] package (validate + resolve dates)
//	         ↓
//	    [render] package (rows + routing + composition)
//	         ↓
//	    SVG/PNG/JSON output
//
// # Quick Start
//
// Load, schedule, and render a plan:
//
//	import (
//	    "github.com/matzehuels/ganttline/pkg/plan"
//	    "github.com/matzehuels/ganttline/pkg/schedule"
//	    "github.com/matzehuels/ganttline/pkg/render"
//	    "github.com/matzehuels/ganttline/pkg/render/gantt"
//	)
//
//	// 1. Parse the plan
//	p, _ := plan.Load("plan.yaml")
//
//	// 2. Resolve start dates from dependencies
//	_ = schedule.Schedule(p)
//
//	// 3. Flatten to rows and compose the chart
//	rows := render.Rows(p)
//	svg, _ := gantt.Render(rows, gantt.Options{Title: p.Name})
//
// Or run everything through the pipeline, the way the CLI does:
//
//	runner := pipeline.NewRunner(logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{Input: "plan.yaml"})
//
// # Main Packages
//
// [plan] - The plan tree: work packages, milestones, groups, and
// categories, plus the closed-schema YAML loader with path-qualified
// errors.
//
// [schedule] - Scheduling gates: id uniqueness, dependency validation,
// cycle detection, Kahn topological ordering, and zero-gap date
// inference from predecessor finishes.
//
// [render] - Flattens the scheduled tree into drawable rows.
// [render/route] computes collision-free orthogonal dependency arrows;
// [render/gantt] composes rows into SVG or PNG through a shared canvas
// abstraction.
//
// [pipeline] - The complete parse → schedule → render pipeline with
// per-stage timing, shared by the CLI and library callers.
//
// [config] - TOML presentation overrides (geometry, fonts, category
// colors). Style never changes scheduling.
//
// [errors] - Structured error codes separating plan faults (validation,
// parse, scheduling) from tool faults (render, internal).
//
// [plan]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/plan
// [schedule]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/schedule
// [render]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render
// [render/route]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render/route
// [render/gantt]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/render/gantt
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/ganttline/pkg/errors
package pkg
