package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/madirex/funko-server/internal/core/domain"
	"github.com/madirex/funko-server/internal/core/ports"
	"github.com/madirex/funko-server/internal/metrics"
)

// Deps bundles the shared components a session needs. All of them are safe
// for concurrent use from many sessions.
type Deps struct {
	Service ports.FunkoService
	Auth    ports.TokenService
	Users   ports.UserDirectory
	Logger  zerolog.Logger

	// DeleteRequiresAdmin restricts DELETE to the ADMIN role. When false any
	// authenticated role may delete.
	DeleteRequiresAdmin bool
}

// Session owns one accepted connection and its sequential request loop.
// Requests within a session are processed strictly one at a time; sessions
// never serialize each other.
type Session struct {
	id   int64
	conn net.Conn
	deps Deps
	out  *bufio.Writer
	log  zerolog.Logger
}

func NewSession(id int64, conn net.Conn, deps Deps) *Session {
	return &Session{
		id:   id,
		conn: conn,
		deps: deps,
		out:  bufio.NewWriter(conn),
		log:  deps.Logger.With().Int64("session", id).Str("remote", conn.RemoteAddr().String()).Logger(),
	}
}

// Serve runs the read loop until the client sends EXIT, the stream ends, or
// a transport error occurs. A single malformed line produces an ERROR
// response and keeps the connection open.
func (s *Session) Serve(ctx context.Context) {
	defer s.conn.Close()
	metrics.SessionsActive.Inc()
	defer metrics.SessionsActive.Dec()

	s.log.Debug().Msg("session opened")
	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn().Err(err).Msg("malformed request line")
			s.respond("INVALID", newResponse(StatusError, "malformed request: "+err.Error()))
			continue
		}

		resp, closing := s.dispatch(ctx, req)
		s.respond(string(req.Type), resp)
		if closing {
			s.log.Debug().Msg("session closed by client")
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.Warn().Err(err).Msg("session read failed")
		return
	}
	s.log.Debug().Msg("session closed by end of stream")
}

// metricType keeps the request type label bounded. Arbitrary client input
// must not mint new label values.
func metricType(reqType string) string {
	switch RequestType(reqType) {
	case RequestLogin, RequestExit, RequestGetAll, RequestGetByID,
		RequestGetByModel, RequestGetByReleaseYear,
		RequestInsert, RequestUpdate, RequestDelete:
		return reqType
	default:
		return "INVALID"
	}
}

func (s *Session) respond(reqType string, resp Response) {
	metrics.RequestsTotal.WithLabelValues(metricType(reqType), string(resp.Status)).Inc()
	payload, err := json.Marshal(resp)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal response")
		return
	}
	if _, err := s.out.Write(append(payload, '\n')); err != nil {
		s.log.Warn().Err(err).Msg("write response")
		return
	}
	if err := s.out.Flush(); err != nil {
		s.log.Warn().Err(err).Msg("flush response")
	}
}

// dispatch routes one request. The bool result reports whether the session
// should close after the response is written.
func (s *Session) dispatch(ctx context.Context, req Request) (Response, bool) {
	switch req.Type {
	case RequestLogin:
		return s.processLogin(req), false
	case RequestExit:
		return newResponse(StatusBye, "closing connection"), true
	case RequestGetAll:
		return s.processGetAll(ctx, req), false
	case RequestGetByID:
		return s.processGetByID(ctx, req), false
	case RequestGetByModel:
		return s.processGetByModel(ctx, req), false
	case RequestGetByReleaseYear:
		return s.processGetByReleaseYear(ctx, req), false
	case RequestInsert:
		return s.processInsert(ctx, req), false
	case RequestUpdate:
		return s.processUpdate(ctx, req), false
	case RequestDelete:
		return s.processDelete(ctx, req), false
	default:
		err := fmt.Errorf("%w: %q", domain.ErrUnknownRequest, req.Type)
		return newResponse(StatusError, err.Error()), false
	}
}

func (s *Session) processLogin(req Request) Response {
	var login Login
	if err := json.Unmarshal([]byte(req.Content), &login); err != nil {
		return newResponse(StatusError, "malformed credentials: "+err.Error())
	}
	user, err := s.deps.Auth.Authenticate(login.Username, login.Password)
	if err != nil {
		s.log.Warn().Str("username", login.Username).Msg("login rejected")
		return newResponse(StatusError, err.Error())
	}
	token, err := s.deps.Auth.CreateToken(*user)
	if err != nil {
		s.log.Error().Err(err).Msg("token mint failed")
		return newResponse(StatusError, "could not create token")
	}
	s.log.Info().Str("username", user.Username).Msg("login accepted")
	return newResponse(StatusToken, token)
}

// authorize re-validates the token carried by a request and resolves its user
// from the directory. When roles is non-empty the resolved role must be one
// of them.
func (s *Session) authorize(token string, roles ...domain.Role) (*domain.User, error) {
	if !s.deps.Auth.VerifyToken(token) {
		return nil, domain.ErrInvalidToken
	}
	claims := s.deps.Auth.Claims(token)
	id, _ := claims["userid"].(string)
	user, err := s.deps.Users.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: token user not resolvable", domain.ErrInvalidToken)
	}
	if len(roles) == 0 {
		return user, nil
	}
	for _, r := range roles {
		if user.Role == r {
			return user, nil
		}
	}
	return nil, domain.ErrPermissionDenied
}

func (s *Session) processGetAll(ctx context.Context, req Request) Response {
	if _, err := s.authorize(req.Token); err != nil {
		return newResponse(StatusError, err.Error())
	}
	funkos, err := s.deps.Service.FindAll(ctx)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	return s.okWithPayload(funkos)
}

func (s *Session) processGetByID(ctx context.Context, req Request) Response {
	if _, err := s.authorize(req.Token); err != nil {
		return newResponse(StatusError, err.Error())
	}
	funko, err := s.deps.Service.FindByID(ctx, req.Content)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	return s.okWithPayload(funko)
}

func (s *Session) processGetByModel(ctx context.Context, req Request) Response {
	if _, err := s.authorize(req.Token); err != nil {
		return newResponse(StatusError, err.Error())
	}
	model, err := domain.ParseModel(req.Content)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	funkos, err := s.deps.Service.FindByModel(ctx, model)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	return s.okWithPayload(funkos)
}

func (s *Session) processGetByReleaseYear(ctx context.Context, req Request) Response {
	if _, err := s.authorize(req.Token); err != nil {
		return newResponse(StatusError, err.Error())
	}
	year, err := strconv.Atoi(req.Content)
	if err != nil {
		return newResponse(StatusError, "release year must be a number")
	}
	funkos, err := s.deps.Service.FindByReleaseYear(ctx, year)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	return s.okWithPayload(funkos)
}

func (s *Session) processInsert(ctx context.Context, req Request) Response {
	if _, err := s.authorize(req.Token, domain.RoleAdmin, domain.RoleUser); err != nil {
		return newResponse(StatusError, err.Error())
	}
	funko, err := decodeFunko(req.Content)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	saved, err := s.deps.Service.Save(ctx, *funko)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	return s.okWithPayload(saved)
}

func (s *Session) processUpdate(ctx context.Context, req Request) Response {
	if _, err := s.authorize(req.Token, domain.RoleAdmin, domain.RoleUser); err != nil {
		return newResponse(StatusError, err.Error())
	}
	funko, err := decodeFunko(req.Content)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	updated, err := s.deps.Service.Update(ctx, funko.ID, *funko)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	return s.okWithPayload(updated)
}

func (s *Session) processDelete(ctx context.Context, req Request) Response {
	roles := []domain.Role{domain.RoleAdmin}
	if !s.deps.DeleteRequiresAdmin {
		roles = append(roles, domain.RoleUser)
	}
	if _, err := s.authorize(req.Token, roles...); err != nil {
		return newResponse(StatusError, err.Error())
	}
	deleted, err := s.deps.Service.Delete(ctx, req.Content)
	if err != nil {
		return newResponse(StatusError, err.Error())
	}
	return s.okWithPayload(deleted)
}

func (s *Session) okWithPayload(payload any) Response {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal payload")
		return newResponse(StatusError, "could not serialize result")
	}
	return newResponse(StatusOK, string(data))
}

// decodeFunko parses and validates the funko document carried by INSERT and
// UPDATE, so an invalid item is rejected before any orchestration happens.
func decodeFunko(content string) (*domain.Funko, error) {
	var funko domain.Funko
	if err := json.Unmarshal([]byte(content), &funko); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFunkoNotValid, err)
	}
	if err := domain.ValidateFunko(funko); err != nil {
		return nil, err
	}
	return &funko, nil
}
