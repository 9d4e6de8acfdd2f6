package ingres

import (
	"github.com/poiesic/ingres/ai"
	"github.com/poiesic/ingres/core"
	"github.com/poiesic/ingres/report"
)

// Answer is the outcome of Ask.
type Answer struct {
	Question string
	Language ai.Language
	Years    []int
	Result   *core.QueryResult
	Report   report.Report
	// Text is the English summary, or the no-data message.
	Text        string
	Translation ai.Translation
}

// Display returns the text to show the user: the translation when there
// is one, otherwise the English summary.
func (a *Answer) Display() string {
	return a.Translation.TextOr(a.Text)
}
