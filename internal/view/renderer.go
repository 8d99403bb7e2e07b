package view

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
)

// Renderer writes dashboard views as terminal tables
type Renderer struct {
	output io.Writer
}

// NewRenderer creates a renderer with optional output destination
func NewRenderer(output io.Writer) *Renderer {
	if output == nil {
		output = os.Stdout
	}
	return &Renderer{output: output}
}

func (r *Renderer) table(header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(r.output)
	if len(header) > 0 {
		t.Header(header)
	}
	return t
}

func (r *Renderer) title(s string) {
	fmt.Fprintf(r.output, "\n--- %s ---\n", s)
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.output, format, args...)
}

// Error prints a fetch or validation failure
func (r *Renderer) Error(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintf(r.output, "Error: %s\n", msg)
}

// Loading prints a placeholder while nothing has been fetched yet
func (r *Renderer) Loading(what string) {
	fmt.Fprintf(r.output, "Loading %s...\n", what)
}

// Empty prints the empty-state line of a listing
func (r *Renderer) Empty(msg string) {
	fmt.Fprintln(r.output, msg)
}

// Info prints a one-line status message
func (r *Renderer) Info(format string, args ...interface{}) {
	fmt.Fprintf(r.output, format+"\n", args...)
}
