package engine

import (
	"errors"
	"fmt"

	"github.com/danieljhkim/vcenv/internal/envops"
	"github.com/danieljhkim/vcenv/internal/planner"
	"github.com/danieljhkim/vcenv/internal/toolchain"
)

// Algorithm steps:
// 1. Look up the profile (fails before any store access)
// 2. Resolve fragments against the store
// 3. Check the update level
// 4. Snapshot the environment and compose the plan
// 5. Refuse an outdated installation unless forced
//
// Prepare has no side effects. On an outdated installation the result still
// carries the plan and verdict alongside the *toolchain.OutdatedError.
func (e *Engine) Prepare(req *PrepareRequest) (*PrepareResult, error) {
	p, err := e.profile(req.Version)
	if err != nil {
		return nil, err
	}

	result := &PrepareResult{Profile: p}
	res, err := e.resolver().Resolve(p, toolchain.Options{SDK: req.SDK})
	if err != nil {
		var missing *toolchain.MissingFragmentError
		if errors.As(err, &missing) {
			result.Verdict = toolchain.Unresolved(p, missing)
		}
		return result, err
	}
	result.Resolution = res
	result.Verdict = toolchain.Check(e.store, p, res)

	snapshot := envops.Capture(e.env, variableNames(p)...)
	plan, err := planner.Compose(res, snapshot)
	if err != nil {
		return result, fmt.Errorf("failed to compose environment: %w", err)
	}
	result.Plan = plan

	if result.Verdict.Status == toolchain.StatusOutdated {
		if !req.Force {
			return result, result.Verdict.Err()
		}
		e.logger.Printf("%s: proceeding with outdated installation (forced)", p.Version)
	}
	return result, nil
}

// Check resolves a profile and checks its update level without composing.
// A missing or incomplete installation is reported in the verdict, which
// keeps the missing role, not as an error.
func (e *Engine) Check(req *CheckRequest) (*CheckResult, error) {
	p, err := e.profile(req.Version)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Profile: p}
	res, err := e.resolver().Resolve(p, toolchain.Options{SDK: req.SDK})
	if err != nil {
		var missing *toolchain.MissingFragmentError
		if !errors.As(err, &missing) {
			return nil, err
		}
		result.Verdict = toolchain.Unresolved(p, missing)
		return result, nil
	}
	result.Resolution = res
	result.Verdict = toolchain.Check(e.store, p, res)
	return result, nil
}

// Profiles lists the supported versions with configured minimums applied.
func (e *Engine) Profiles() []ProfileInfo {
	var infos []ProfileInfo
	for _, builtin := range toolchain.All() {
		p, err := e.profile(builtin.Version)
		if err != nil {
			p = builtin
		}
		editions := make([]string, len(p.Editions))
		for i, ed := range p.Editions {
			editions[i] = ed.Name
		}
		infos = append(infos, ProfileInfo{
			Version:     p.Version,
			Aliases:     p.Aliases,
			Product:     p.Product,
			Editions:    editions,
			Minimum:     p.Update.Minimum,
			SupportsSDK: p.SupportsSDK,
		})
	}
	return infos
}

func variableNames(p *toolchain.Profile) []string {
	names := make([]string, 0, len(p.Variables))
	for _, v := range p.Variables {
		names = append(names, v.Name)
	}
	return names
}
