// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/storage"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/types"
)

var _ ResolverInterface = (*Resolver)(nil)

// Resolver derives the tenant from the subdomain of the base domain
type Resolver struct {
	baseDomain   string
	identityHost string

	registry storage.TenantRegistryInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *Resolver) Resolve(ctx context.Context, host string) (*types.Tenant, error) {
	ctx, span := r.tracer.Start(ctx, "tenant.Resolver.Resolve")
	defer span.End()

	hostname := normalizeHost(host)

	if hostname == "" || hostname == r.baseDomain || hostname == r.identityHost {
		return nil, nil
	}

	label, found := strings.CutSuffix(hostname, "."+r.baseDomain)
	if !found || label == "" || strings.Contains(label, ".") {
		return nil, nil
	}

	t, err := r.registry.GetTenantBySubdomain(ctx, label)
	if errors.Is(err, storage.ErrNotFound) {
		r.logger.Debugf("no tenant registered for subdomain %q", label)
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant for %q: %w", label, err)
	}

	return t, nil
}

// normalizeHost strips the port, lowercases and drops a trailing dot
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)

	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	return strings.TrimSuffix(strings.ToLower(host), ".")
}

func NewResolver(baseDomain, identitySubdomain string, registry storage.TenantRegistryInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	r := new(Resolver)

	r.baseDomain = normalizeHost(baseDomain)
	if identitySubdomain != "" {
		r.identityHost = strings.ToLower(identitySubdomain) + "." + r.baseDomain
	}

	r.registry = registry

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
