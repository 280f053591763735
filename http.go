package presenter

import (
	"context"
	"errors"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

// PresentationServer serves a live preview of one markdown deck. Connected
// browsers reload whenever Rerender succeeds.
type PresentationServer struct {
	source     string
	defaults   Presentation
	opts       HTMLOptions
	ctx        context.Context
	httpServer *http.Server
	wsUpgrader websocket.Upgrader

	indexLock  *sync.Mutex
	indexBytes []byte
	baseDir    string

	connLock        *sync.Mutex
	livereloadConns map[*websocket.Conn]struct{}
}

func NewPresentationServer(ctx context.Context, source string, defaults Presentation, opts HTMLOptions, addr string) (*PresentationServer, error) {
	opts.LiveReload = true
	p := &PresentationServer{
		ctx:             ctx,
		source:          source,
		defaults:        defaults,
		opts:            opts,
		httpServer:      &http.Server{Addr: addr},
		indexLock:       &sync.Mutex{},
		connLock:        &sync.Mutex{},
		wsUpgrader:      websocket.Upgrader{},
		livereloadConns: make(map[*websocket.Conn]struct{}),
	}

	if err := p.render(); err != nil {
		return nil, err
	}
	p.httpServer.Handler = p.Handler()
	return p, nil
}

func (p *PresentationServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/assets/", http.StripPrefix("/assets/", ServeAssets()))
	mux.Handle("/livereload", http.HandlerFunc(p.livereloadHandler))
	mux.Handle("/", http.HandlerFunc(p.serveIndex))
	return mux
}

// serveIndex answers / with the rendered deck and anything else from the
// deck's directory, so that relative image paths resolve.
func (p *PresentationServer) serveIndex(w http.ResponseWriter, r *http.Request) {
	p.indexLock.Lock()
	index, baseDir := p.indexBytes, p.baseDir
	p.indexLock.Unlock()

	if name := path.Clean(r.URL.Path); name != "/" && name != "/index.html" {
		http.FileServer(http.Dir(baseDir)).ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(index)
}

func (p *PresentationServer) livereloadHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := p.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Debug("livereload upgrade failed")
		return
	}

	p.connLock.Lock()
	p.livereloadConns[ws] = struct{}{}
	p.connLock.Unlock()

	ctx, cancel := context.WithCancel(p.ctx)
	go p.readLoop(cancel, ws)
	go ping(ctx, ws)
}

// readLoop discards client messages and drops the connection once it fails.
func (p *PresentationServer) readLoop(cancel context.CancelFunc, ws *websocket.Conn) {
	defer cancel()
	for {
		if _, _, err := ws.NextReader(); err != nil {
			p.drop(ws)
			return
		}
	}
}

func (p *PresentationServer) drop(ws *websocket.Conn) {
	p.connLock.Lock()
	delete(p.livereloadConns, ws)
	p.connLock.Unlock()
	ws.Close()
}

func (p *PresentationServer) connections() int {
	p.connLock.Lock()
	defer p.connLock.Unlock()
	return len(p.livereloadConns)
}

func ping(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				logger.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

func (p *PresentationServer) render() error {
	pres, err := ParseFile(p.source, p.defaults)
	if err != nil {
		return err
	}
	opts := p.opts
	opts.RefDir = pres.BaseDir
	index, err := RenderHTML(pres, opts)
	if err != nil {
		return err
	}

	p.indexLock.Lock()
	p.indexBytes, p.baseDir = index, pres.BaseDir
	p.indexLock.Unlock()
	logger.WithFields(logrus.Fields{"source": p.source, "slides": len(pres.Slides)}).Info("rendered presentation")
	return nil
}

// Rerender parses the source again and tells every browser to reload. On
// error the previous rendering keeps being served.
func (p *PresentationServer) Rerender() error {
	if err := p.render(); err != nil {
		return err
	}

	p.connLock.Lock()
	conns := make([]*websocket.Conn, 0, len(p.livereloadConns))
	for ws := range p.livereloadConns {
		conns = append(conns, ws)
	}
	p.connLock.Unlock()

	for _, ws := range conns {
		ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteMessage(websocket.TextMessage, []byte(`Reload`)); err != nil {
			p.drop(ws)
		}
	}
	return nil
}

func (p *PresentationServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()

	p.connLock.Lock()
	for ws := range p.livereloadConns {
		ws.Close()
		delete(p.livereloadConns, ws)
	}
	p.connLock.Unlock()
	return p.httpServer.Shutdown(ctx)
}

// Run serves until Close is called.
func (p *PresentationServer) Run() error {
	logger.WithField("addr", p.httpServer.Addr).Info("serving presentation")
	if err := p.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
