// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

/*
Package supervisor runs the long-lived parts of Touchline under suture v4.

The tree has two layers so that a failing background task cannot take the
listener down with it:

	RootSupervisor ("touchline")
	├── DataSupervisor ("data-layer")
	│   ├── listing-cache sweeper (when caching is enabled)
	│   └── StoreProbeService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts failures on its own. A service that returns an error is
restarted; one that returns nil stays stopped. When the counter passes
FailureThreshold the layer waits FailureBackoff before the next restart,
and the counter decays over FailureDecay seconds.

Supervisor events (start, stop, failure, backoff) are logged through
sutureslog onto the process logger.

DuckDB itself is not supervised. It is an embedded library; its failures
surface as query errors and are handled by the circuit breaker in the
database package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(svc.CacheSweeper())
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

If shutdown hangs, UnstoppedServiceReport lists the services that did not
return within ShutdownTimeout.
*/
package supervisor
