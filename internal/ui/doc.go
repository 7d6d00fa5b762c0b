// Package ui is the terminal front end of the tab switcher.
//
// AppModel turns key bindings into stack.Controller calls and runs a frame
// loop that feeds each transition plan through a player.Player back into the
// controller. Tabs are drawn as bordered cards on a character Canvas, scaled
// from viewport units by a Projection. A side panel lists the transitions
// recorded by telemetry.Recorder.
package ui
