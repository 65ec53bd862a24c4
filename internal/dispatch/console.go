// Package dispatch renders outcomes toward their recipients. The console
// dispatcher is the reference delivery collaborator; push or SMS transports
// are drop-in replacements behind the same interface.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"guardian/internal/decision"
	"guardian/internal/household"
)

// Console writes outcomes to a writer, resolving member ids to names.
type Console struct {
	household *household.Context
	out       io.Writer
}

func NewConsole(hh *household.Context, out io.Writer) *Console {
	return &Console{household: hh, out: out}
}

func (c *Console) Deliver(_ context.Context, outcomes []decision.Outcome) {
	for _, outcome := range outcomes {
		who := outcome.To
		if member, ok := c.household.Member(outcome.To); ok {
			who = member.Name
		}
		fmt.Fprintf(c.out, "[To %s] %s\n", who, outcome.Message)
		if outcome.Kind == decision.OutcomePrompt {
			fmt.Fprintf(c.out, "  Actions: %s\n", strings.Join(outcome.Actions, ", "))
		}
	}
}
