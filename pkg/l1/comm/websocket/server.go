package websocket

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/comm"
)

// Paths served by Server.
const (
	PathL1   = "/l1"
	PathInfo = "/info"
)

// Server accepts connectors over websocket and implements l1.Registrar.
// Commands from every connection are posted to the loop and events are
// broadcast to all connections.
type Server struct {
	Addr string
	Info l1.ControllerInfo

	listener net.Listener
	conns    map[*comm.Registrar]struct{}
	lock     sync.Mutex
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, info l1.ControllerInfo) *Server {
	return &Server{Addr: addr, Info: info}
}

// Listen binds the listening address so it's known before Run.
func (s *Server) Listen() (net.Addr, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.listener == nil {
		ln, err := net.Listen("tcp", s.Addr)
		if err != nil {
			return nil, err
		}
		s.listener = ln
	}
	return s.listener.Addr(), nil
}

// SendEvent implements l1.Registrar.
func (s *Server) SendEvent(ctx context.Context, msg fx.Message) error {
	var errs fx.AggregatedError
	s.lock.Lock()
	defer s.lock.Unlock()
	for reg := range s.conns {
		errs.Add(reg.SendEvent(ctx, msg))
	}
	return errs.Aggregate()
}

// AddToLoop implements LoopAdder.
func (s *Server) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(fx.NamedRun("websocket-server", s))
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	if _, err := s.Listen(); err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.HandleFunc(PathInfo, s.serveInfo)
	mux.Handle(PathL1, websocket.Server{Handler: func(conn *websocket.Conn) {
		s.serveConn(ctx, conn)
	}})
	srv := &http.Server{Handler: mux}
	glog.Infof("websocket registrar listening on %s", s.listener.Addr())
	return fx.RunWithContextCloser(ctx, srv, func() error {
		if err := srv.Serve(s.listener); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func (s *Server) serveInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&s.Info); err != nil {
		glog.Warningf("write info error: %v", err)
	}
}

func (s *Server) serveConn(ctx context.Context, conn *websocket.Conn) {
	reg := &comm.Registrar{}
	reg.Init(New(conn))
	remote := conn.Request().RemoteAddr
	glog.Infof("connector %s connected", remote)
	s.lock.Lock()
	if s.conns == nil {
		s.conns = make(map[*comm.Registrar]struct{})
	}
	s.conns[reg] = struct{}{}
	s.lock.Unlock()

	err := fx.RunWithContextCloser(ctx, conn, func() error {
		return reg.Serve(ctx)
	})

	s.lock.Lock()
	delete(s.conns, reg)
	s.lock.Unlock()
	glog.Infof("connector %s disconnected: %v", remote, err)
}
