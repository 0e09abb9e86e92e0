// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package services adapts ProductSense components to suture's Serve pattern.

HTTPServerService wraps an *http.Server: ListenAndServe runs in a goroutine
and context cancellation triggers a graceful Shutdown. A bind failure is
returned so the supervisor can back off and retry.

RebuildService owns the artifact build lifecycle. It optionally builds
every artifact when it starts, then rebuilds on a fixed interval. A failed
build is logged and never stops the service, so the last good artifacts
keep serving.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
