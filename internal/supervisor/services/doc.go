// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

/*
Package services adapts Touchline components to suture's Serve pattern.

  - HTTPServerService wraps an *http.Server with graceful shutdown.
  - StoreProbeService pings the article store on an interval and keeps the
    touchline_store_up gauge current.

Each service returns ctx.Err() when asked to stop and a wrapped error when
it fails, so the supervisor can tell the two apart.
*/
package services
