// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package supervisor provides process supervision for Eventscope using suture v4.

Every long-running goroutine in the process runs as a supervised service:

	RootSupervisor ("eventscope")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── cache janitor (cache.Cache implements suture.Service)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A janitor crash restarts inside its own layer and never touches the HTTP
server. Expired entries are still dropped lazily on read while a janitor
is backing off.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddMaintenanceService(sharedCache)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Configuration

Zero TreeConfig fields take suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Logging

Supervisor events (service panics, terminations, backoff) are bridged to
slog through sutureslog. The slog logger is backed by zerolog, so those
events share the application's log format.

# Debugging Shutdown Issues

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
	}
*/
package supervisor
