// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package supervisor runs the long-lived parts of the server under suture v4.

The tree has two layers so that background upkeep can fail and restart
without touching request serving:

	RootSupervisor ("cinematch")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   ├── store-gauges (profile store size to Prometheus)
	│   └── poster-cache (expired entries, Badger value log GC)
	└── APISupervisor ("api-layer")
	    └── http-server

Supervisor events are logged through sutureslog, bridged into zerolog by
logging.NewSlogLogger.

Usage in main:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    FailureThreshold: cfg.Supervisor.FailureThreshold,
	    FailureBackoff:   cfg.Supervisor.FailureBackoff,
	    ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	tree.AddMaintenanceService(services.NewStoreGaugeService(store, cfg.Supervisor.GaugeInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor
