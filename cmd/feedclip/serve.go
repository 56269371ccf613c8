package main

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/fwojciec/feedclip"
	feedclipgin "github.com/fwojciec/feedclip/gin"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may run after an
// interrupt.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command. It blocks until the context is done.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		err = feedclip.Errorf(feedclip.EINVALID, "cannot listen on %s: %v", c.Addr, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", feedclip.ErrorMessage(err))
		return err
	}

	srv := feedclipgin.NewServer(deps.Processor, deps.Logger)
	fmt.Fprintf(deps.Stdout, "Listening on http://%s\n", ln.Addr())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
