// Package editor provides a Bubble Tea text editor component for C++-flavored
// source backed by the buffer package.
//
// Keys go through the smartedit machine first, every buffer change is fed to
// a highlight.Driver, and the driver's spans are rendered with lipgloss styles
// from a syntax.Registry. The line-number gutter is sized by gutter.Sizer.
package editor
