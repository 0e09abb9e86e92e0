// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package supervisor runs the long-lived parts of ProductSense under a suture v4
supervisor tree.

The tree has two layers so that a failing rebuild loop never takes the HTTP
server down with it:

	root ("productsense")
	├── build-layer
	│   └── RebuildService (startup build, periodic rebuilds)
	└── api-layer
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Events are logged
through sutureslog using the zerolog-backed slog handler from the logging
package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddBuildService(services.NewRebuildService(builder, rebuildCfg))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
