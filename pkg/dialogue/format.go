package dialogue

import (
	"strings"

	// Packages
	"github.com/mutablelogic/go-callreview/pkg/schema"
)

//////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Format returns the turns as "<Role>: <text>" lines
func Format(turns []schema.Turn) string {
	var buf strings.Builder
	for i, turn := range turns {
		if i > 0 {
			buf.WriteByte('\n')
		}
		turn.WriteText(&buf)
	}
	return buf.String()
}
