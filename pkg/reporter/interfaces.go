// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package reporter

import (
	"context"
)

// NavigatorInterface moves the user to another location once the tenant
// session is over
type NavigatorInterface interface {
	Redirect(ctx context.Context, location string) error
}

// NavigatorFunc adapts a plain function to NavigatorInterface
type NavigatorFunc func(ctx context.Context, location string) error

func (f NavigatorFunc) Redirect(ctx context.Context, location string) error {
	return f(ctx, location)
}
