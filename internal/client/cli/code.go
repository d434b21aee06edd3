package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/scapegis/scapegis-cli/internal/client/flow"
	"github.com/scapegis/scapegis-cli/internal/client/models"
)

// enterCode reads codes until one is accepted or the flow moves elsewhere.
// A line may hold the whole code, as a paste would, or be "resend" or
// "cancel". Spaces between digits are ignored.
func (a *App) enterCode(ctx context.Context) (flow.Outcome, error) {
	entry := flow.NewCodeEntry()

	for {
		line, err := getSimpleText(a.reader, "Enter the 6-digit code ('resend' for a new one, 'cancel' to stop)", a.out)
		if err != nil {
			return flow.Outcome{}, err
		}

		switch line {
		case "":
			continue
		case "cancel":
			return flow.Outcome{}, errCancelled
		case "resend":
			out := a.flow.ResendCode(ctx)
			if out.Step != models.StepOTP {
				return out, nil
			}
			a.render(out)
			entry.Clear()
			continue
		}

		entry.Clear()
		submit, err := entry.Put(0, strings.ReplaceAll(line, " ", ""))
		if errors.Is(err, flow.ErrNotDigit) {
			printlnFn("Error:", "Only digits are allowed.")
			continue
		}
		if errors.Is(err, flow.ErrTooManyDigits) {
			printlnFn("Error:", flow.MsgIncompleteCode)
			continue
		}
		if err != nil {
			return flow.Outcome{}, err
		}
		if !submit {
			printlnFn("Error:", flow.MsgIncompleteCode)
			printlnFn(entry.String())
			continue
		}

		out := a.flow.SubmitCode(ctx, entry.Code())
		if out.Step != models.StepOTP {
			return out, nil
		}
		a.render(out)
		if out.ClearCode {
			entry.Clear()
		}
	}
}
