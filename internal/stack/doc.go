// Package stack implements the tab-stack layout and animation engine used by
// the spatial tab switcher.
//
// Core abstractions:
//   - TabProxy: per-tab animatable state (scroll offset, scale, alpha, ...)
//   - Policy: maps tab count, orientation and viewport to a Layout
//     (spacing, scale, coordinate warp). Overlapping and NonOverlapping.
//   - Builder: turns a transition Kind into a declarative Plan of
//     property animations. Landscape and Portrait variants.
//   - Controller: owns the tabs, the scroll offset and the active policy, and
//     starts plans on mode transitions.
//
// The engine never interpolates plans itself. A driver (see internal/player)
// advances each Entry per frame and writes values back through
// Controller.Apply, then calls Controller.Update to re-derive screen
// coordinates.
//
// All methods are expected to run on a single UI thread. Nothing in this
// package is safe for concurrent use.
//
// # Debug assertions
//
// Contract violations (focus index out of range, empty stack transitions,
// non-positive spacing) panic when built with the tabstackdebug tag and are
// logged and turned into no-ops otherwise.
package stack
