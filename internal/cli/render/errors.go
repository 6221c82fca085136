package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/vdeploy/internal/domain"
)

// RenderError prints a failure and its kind
func RenderError(w io.Writer, err error) {
	if err == nil {
		return
	}
	color.New(color.FgRed).Fprintf(w, "Error: %v\n", err)
	fmt.Fprintf(w, "error kind: %s\n", domain.KindOf(err))
}
