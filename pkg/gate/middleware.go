// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gate

import (
	"net/http"

	"github.com/canonical/tenant-session-service/internal/http/types"
	"github.com/canonical/tenant-session-service/pkg/authentication"
	"github.com/canonical/tenant-session-service/pkg/tenant"
)

// Middleware evaluates p against the principal and tenant of the request
func (g *Gate) Middleware(p Pipeline) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := g.tracer.Start(r.Context(), "gate.Gate.Middleware")
			defer span.End()

			req := new(Request)
			req.Principal, _ = authentication.PrincipalFromContext(ctx)
			req.Tenant, _ = tenant.FromContext(ctx)

			err := p.Evaluate(ctx, req)

			if req.Annotation != nil && req.Tenant != nil {
				if aerr := g.annotator.Annotate(w, r, req.Tenant.ID, *req.Annotation); aerr != nil {
					g.logger.Warnf("failed to annotate tenant session: %v", aerr)
				}
			}

			if err != nil {
				if types.StatusFor(err) == http.StatusInternalServerError {
					g.logger.Errorf("access check failed: %v", err)
				} else {
					g.logger.Debugf("access denied: %v", err)
				}

				types.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
