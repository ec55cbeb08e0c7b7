// Package check provides the runner that validates the stored data.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/taskrace/pkg/app"
	"tableflip.dev/taskrace/pkg/printers"
)

// ErrProblems is returned when the check found anything wrong.
var ErrProblems = errors.New("check found problems")

type Check struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

// Do prints every problem found and fails when there is at least one.
func (n *Check) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not check, no service")
	}
	problems, err := n.Service.Check(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		if problems == nil {
			problems = []app.Problem{}
		}
		if err := printers.JSON(n.Out, problems); err != nil {
			return err
		}
	} else {
		pp := printers.PrettyPrint{Out: n.Out}
		pp.Problems(problems...)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %d", ErrProblems, len(problems))
	}
	return nil
}
