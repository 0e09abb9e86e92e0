// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package api serves the recommendation, search and price prediction
endpoints over HTTP using the Chi router.

Endpoints:

	GET  /recommend/{product_id}   up to 3 similar products
	GET  /search?q=                up to 5 matching products
	GET  /predict-price?category=&stock_count=&shipping=
	GET  /demo                     HTML page (JSON with ?format=json)
	GET  /health                   liveness
	GET  /ready                    200 once both artifacts exist, else 503
	GET  /artifacts                stored artifact metadata
	GET  /metrics                  Prometheus metrics
	POST /admin/rebuild            rebuild both artifacts (server.admin_enabled)

Trailing slashes are accepted on every route.

Error Handling:

Every failure is a JSON body {"error": "...", "code": "..."}. Bad input
is 400, an unknown product 404, and a missing artifact 500 with code
NOT_BUILT so operators can tell an uninitialized system from a bad request.
*/
package api
