// Package server hosts the TCP frontend: it accepts connections, decodes
// the binary command stream (internal/protocol), and funnels every
// decoded command through a single internal/ingest.Runner so the
// matching core only ever sees one writer. Structure follows the
// teacher's internal/net server: a bounded WorkerPool reads
// connections, a tomb.Tomb supervises all goroutines, zerolog logs.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"matchbook/internal/ingest"
	"matchbook/internal/protocol"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const (
	maxMessageSize     = 4 * 1024
	defaultNWorkers    = 10
	defaultConnTimeout = 30 * time.Second
)

// Server is the TCP frontend for the matching engine.
type Server struct {
	address string
	port    int
	pool    WorkerPool
	runner  *ingest.Runner
	cancel  context.CancelFunc
}

// New builds a Server that will apply every decoded command to runner.
func New(address string, port int, runner *ingest.Runner) *Server {
	return &Server{
		address: address,
		port:    port,
		pool:    NewWorkerPool(defaultNWorkers),
		runner:  runner,
	}
}

// Shutdown tears down the listener and all connection workers.
func (s *Server) Shutdown() {
	log.Info().Msg("server shutting down")
	if s.cancel != nil {
		s.cancel()
	}
}

// Run listens and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	defer s.Shutdown()

	ctx, s.cancel = context.WithCancel(ctx)
	t, ctx := tomb.WithContext(ctx)

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("%s:%d", s.address, s.port))
	if err != nil {
		return fmt.Errorf("unable to start listener: %w", err)
	}
	// Closing the listener once ctx is done unblocks Accept below.
	go func() {
		<-ctx.Done()
		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("unable to close listener")
		}
	}()

	s.runner.Start(t)

	t.Go(func() error {
		s.pool.Setup(t, s.handleConnection)
		return nil
	})

	log.Info().Str("address", listener.Addr().String()).Msg("server listening")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return nil
				default:
					log.Error().Err(err).Msg("error accepting client")
					continue
				}
			}
			log.Info().Str("remote", conn.RemoteAddr().String()).Msg("client connected")
			s.pool.AddTask(conn)
		}
	}
}

// handleConnection owns one client connection for its lifetime: it
// treats the bytes of each Read as one message (there is no length
// prefix), decodes it, submits it to the runner and writes back the
// resulting report. Any error here closes
// just this connection, not the server.
func (s *Server) handleConnection(t *tomb.Tomb, task any) error {
	conn, ok := task.(net.Conn)
	if !ok {
		return fmt.Errorf("server: unexpected task type %T", task)
	}
	defer conn.Close()

	for {
		select {
		case <-t.Dying():
			return nil
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(defaultConnTimeout)); err != nil {
			log.Error().Err(err).Msg("failed setting read deadline")
			return nil
		}

		buf := make([]byte, maxMessageSize)
		n, err := conn.Read(buf)
		if err != nil {
			log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("connection closed")
			return nil
		}

		report := s.dispatch(t, buf[:n])
		if _, err := conn.Write(report.Serialize()); err != nil {
			log.Debug().Err(err).Msg("failed writing report")
			return nil
		}
	}
}

// dispatch decodes one message, submits it to the runner, and builds
// the wire report for the result.
func (s *Server) dispatch(t *tomb.Tomb, msg []byte) protocol.Report {
	ctype, body, err := protocol.DecodeCommandType(msg)
	if err != nil {
		return errorReport(uuid.Nil, err)
	}

	cmd := ingest.Command{}
	switch ctype {
	case protocol.AddOrder:
		add, err := protocol.DecodeAddOrder(body)
		if err != nil {
			return errorReport(uuid.Nil, err)
		}
		cmd.RequestID, cmd.Add = add.RequestID, &add
	case protocol.CancelOrder:
		c, err := protocol.DecodeCancelOrder(body)
		if err != nil {
			return errorReport(uuid.Nil, err)
		}
		cmd.RequestID, cmd.Cancel = c.RequestID, &c
	case protocol.ModifyOrder:
		m, err := protocol.DecodeModifyOrder(body)
		if err != nil {
			return errorReport(uuid.Nil, err)
		}
		cmd.RequestID, cmd.Modify = m.RequestID, &m
	default:
		return errorReport(uuid.Nil, protocol.ErrUnknownCommandType)
	}

	res, err := s.runner.Submit(t.Context(nil), cmd)
	if err != nil {
		return errorReport(cmd.RequestID, err)
	}
	if res.Err != nil {
		return errorReport(cmd.RequestID, res.Err)
	}
	if len(res.Trades) == 0 {
		return protocol.Report{Type: protocol.ExecutionReport, RequestID: cmd.RequestID}
	}
	// Only the first trade is reported inline; a real deployment would
	// stream one ExecutionReport per fill.
	return protocol.Report{Type: protocol.ExecutionReport, RequestID: cmd.RequestID, Trade: res.Trades[0]}
}

func errorReport(requestID uuid.UUID, err error) protocol.Report {
	return protocol.Report{Type: protocol.ErrorReport, RequestID: requestID, Err: err.Error()}
}
