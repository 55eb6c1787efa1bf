// Package server runs an http.Handler with timeouts and graceful shutdown.
//
//	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Run blocks until ctx is canceled, then shuts down within the configured
// shutdown timeout. TLS is enabled when both certificate and key files are
// configured.
package server
