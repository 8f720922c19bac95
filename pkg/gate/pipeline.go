// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gate

import (
	"context"

	"github.com/canonical/tenant-session-service/internal/types"
	"github.com/canonical/tenant-session-service/pkg/authentication"
)

// Request is what the stages of a pipeline inspect
type Request struct {
	Principal *authentication.Principal
	Tenant    *types.Tenant

	// Annotation is set when a stage wants the tenant session state noted on
	// the principal, it is persisted even when the request is rejected
	Annotation *authentication.TenantAnnotation
}

// StageFunc adapts a function to a Stage
type StageFunc func(context.Context, *Request) error

func (f StageFunc) Check(ctx context.Context, req *Request) error {
	return f(ctx, req)
}

// Pipeline runs its stages in order and stops at the first failure
type Pipeline []Stage

func (p Pipeline) Evaluate(ctx context.Context, req *Request) error {
	for _, stage := range p {
		if err := stage.Check(ctx, req); err != nil {
			return err
		}
	}

	return nil
}

func NewPipeline(stages ...Stage) Pipeline {
	return Pipeline(stages)
}
