package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/vcenv/internal/planner"
)

// Apply assigns every variable of the plan to the environment in order.
func (e *Engine) Apply(plan *planner.EnvironmentPlan) error {
	for _, a := range plan.Assignments() {
		if err := e.env.Set(a.Name, a.Value); err != nil {
			return fmt.Errorf("failed to set %s: %w", a.Name, err)
		}
	}
	e.logger.Printf("%s: applied %d variables", plan.Version, plan.Len())
	return nil
}

// Start applies a prepared plan and runs the command in the resulting
// environment. The command is not started unless the plan was applied
// completely. A child exiting non-zero yields *runner.ExitError.
func (e *Engine) Start(ctx context.Context, plan *planner.EnvironmentPlan, command []string) error {
	if len(command) == 0 {
		return ErrNoCommand
	}
	if err := e.Apply(plan); err != nil {
		return err
	}

	e.logger.Printf("running %v", command)
	return e.runner.Run(ctx, e.env.Environ(), command[0], command[1:]...)
}

// Run prepares the environment and starts the command.
func (e *Engine) Run(ctx context.Context, req *RunRequest) (*PrepareResult, error) {
	if len(req.Command) == 0 {
		return nil, ErrNoCommand
	}

	result, err := e.Prepare(&req.PrepareRequest)
	if err != nil {
		return result, err
	}
	return result, e.Start(ctx, result.Plan, req.Command)
}
