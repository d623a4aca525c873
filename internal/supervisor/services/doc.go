// Eventscope - Nearby Event Aggregation and Geographic Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/eventscope

/*
Package services provides suture.Service wrappers for Eventscope components
whose lifecycle does not already match Serve(ctx) error.

HTTPServerService adapts the ListenAndServe/Shutdown pattern of *http.Server:

	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router}
	tree.AddAPIService(services.NewHTTPServerService(server, 15*time.Second))

Return values determine supervisor behavior:

	nil         -> Service stopped cleanly, will not restart
	error       -> Service crashed, supervisor will restart
	ctx.Err()   -> Shutdown requested, normal termination
*/
package services
