// Package server implements the OSC control surface: a blocking UDP
// receive loop that translates inbound messages into device reports.
package server

import (
	"fmt"
	"net"

	"github.com/hypebeast/go-osc/osc"
	"github.com/rs/zerolog"

	"github.com/helloitszak/qlight-ctrl/internal/qlight"
	"github.com/helloitszak/qlight-ctrl/internal/router"
)

// Server resolves routed OSC messages into command sets and applies them
// to the device session. Everything runs on the caller's goroutine; there
// is no concurrent message handling.
type Server struct {
	log              zerolog.Logger
	router           *router.Router
	session          *qlight.Session
	exitOnWriteError bool
}

func New(log zerolog.Logger, session *qlight.Session, exitOnWriteError bool) *Server {
	r := router.New()
	mustAdd(r, "/lights/{id}/{color}", router.KindColor)
	mustAdd(r, "/reset/{id}", router.KindReset)

	return &Server{
		log:              log,
		router:           r,
		session:          session,
		exitOnWriteError: exitOnWriteError,
	}
}

func mustAdd(r *router.Router, template string, kind router.Kind) {
	if err := r.Add(template, kind); err != nil {
		panic(err)
	}
}

// ListenAndServe binds the UDP socket and runs the receive loop until a
// receive or decode error ends it.
func (s *Server) ListenAndServe(listen string) error {
	conn, err := net.ListenPacket("udp4", listen)
	if err != nil {
		return fmt.Errorf("bind %s: %w", listen, err)
	}
	defer conn.Close()

	s.log.Info().Str("listen", listen).Msg("Listening for OSC packets")
	return s.Serve(conn)
}

// Serve runs the receive loop on an already-bound connection.
func (s *Server) Serve(conn net.PacketConn) error {
	oscServer := &osc.Server{}
	for {
		packet, err := oscServer.ReceivePacket(conn)
		if err != nil {
			s.log.Error().Err(err).Msg("Receive failed, shutting down")
			return fmt.Errorf("receive osc packet: %w", err)
		}
		if err := s.handlePacket(packet); err != nil {
			return err
		}
	}
}

func (s *Server) handlePacket(packet osc.Packet) error {
	switch p := packet.(type) {
	case *osc.Message:
		return s.handleMessage(p)
	case *osc.Bundle:
		s.log.Warn().Msg("OSC bundles are not supported, ignoring packet")
		return nil
	default:
		s.log.Warn().Msg("Unknown OSC packet type, ignoring packet")
		return nil
	}
}

func (s *Server) handleMessage(msg *osc.Message) error {
	kind, params, ok := s.router.Match(msg.Address)
	if !ok {
		s.log.Warn().Str("addr", msg.Address).Msg("Ignoring message for unknown OSC path")
		return nil
	}

	var set *qlight.CommandSet
	switch kind {
	case router.KindColor:
		set = s.resolveColor(msg, params)
	case router.KindReset:
		set = s.resolveReset(msg, params)
	}
	if set == nil {
		// Declined commands are logged where they are rejected; the loop
		// moves on to the next packet.
		return nil
	}

	return s.apply(set)
}

// resolveColor builds a single-channel update from a /lights/{id}/{color}
// message. The message must carry exactly one int argument in 0..2.
func (s *Server) resolveColor(msg *osc.Message, params router.Params) *qlight.CommandSet {
	color, err := qlight.ParseColor(params["color"])
	if err != nil {
		s.log.Warn().
			Str("addr", msg.Address).
			Str("color", params["color"]).
			Msg("Ignoring message with unknown color")
		return nil
	}

	mode, ok := lightModeArg(msg.Arguments)
	if !ok {
		s.log.Warn().
			Str("addr", msg.Address).
			Interface("args", msg.Arguments).
			Msg("Ignoring message with unknown arguments")
		return nil
	}

	s.log.Info().
		Str("id", params["id"]).
		Stringer("color", color).
		Stringer("mode", mode).
		Msg("Setting light")

	set := qlight.NewCommandSet()
	set.Set(color, mode)
	return set
}

// resolveReset turns a /reset/{id} message into an all-off command set,
// ignoring any arguments.
func (s *Server) resolveReset(msg *osc.Message, params router.Params) *qlight.CommandSet {
	s.log.Info().Str("id", params["id"]).Msg("Resetting light")
	return qlight.AllOff()
}

func lightModeArg(args []interface{}) (qlight.LightMode, bool) {
	if len(args) != 1 {
		return 0, false
	}
	v, ok := args[0].(int32)
	if !ok {
		return 0, false
	}
	switch v {
	case 0:
		return qlight.LightOff, true
	case 1:
		return qlight.LightOn, true
	case 2:
		return qlight.LightBlink, true
	}
	return 0, false
}

func (s *Server) apply(set *qlight.CommandSet) error {
	n, err := s.session.Apply(set)
	if err != nil {
		if s.exitOnWriteError {
			return fmt.Errorf("update light %q: %w", s.session.Binding().Name, err)
		}
		s.log.Warn().
			Err(err).
			Str("binding", s.session.Binding().Name).
			Msg("Failed to update light")
		return nil
	}

	s.log.Debug().Int("bytes", n).Msg("Report written")
	return nil
}
