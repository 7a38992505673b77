// Package outwriter renders engine results as text, JSON, CSV or SVG.
package outwriter
