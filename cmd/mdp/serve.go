package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/connctd/presenter"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

var httpAddr string

var serveCommand = cli.Command{
	Name:        "serve",
	Aliases:     []string{"s"},
	Description: "Serve a live preview of the presentation",
	Usage:       "serve <input.md> [--addr :8080]",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "addr",
			Usage:       "Specify the address to listen on",
			Destination: &httpAddr,
		},
	},
	Action: func(ctx *cli.Context) error {
		source := ctx.Args().First()
		if source == "" {
			return errors.New("no input file given")
		}
		if httpAddr == "" {
			httpAddr = config.Addr
		}

		sctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		// Editors often replace files on save, so watch the directory.
		if err := watcher.Add(filepath.Dir(source)); err != nil {
			return err
		}

		server, err := presenter.NewPresentationServer(sctx, source, config.Defaults(), config.HTMLOptions(), httpAddr)
		if err != nil {
			return err
		}

		g, gctx := errgroup.WithContext(sctx)
		g.Go(server.Run)
		g.Go(func() error {
			return watch(gctx, watcher, server)
		})
		g.Go(func() error {
			<-gctx.Done()
			return server.Close()
		})
		return g.Wait()
	},
}

func watch(ctx context.Context, watcher *fsnotify.Watcher, server *presenter.PresentationServer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithError(err).Warn("watcher error")
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
				continue
			}
			logrus.WithFields(logrus.Fields{"file": evt.Name, "op": evt.Op.String()}).Info("file changed, rerendering")
			if err := server.Rerender(); err != nil {
				logrus.WithError(err).Warn("rerender failed, keeping previous version")
			}
		}
	}
}
