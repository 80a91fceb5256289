// Package api serves the ledger services as Connect unary procedures.
//
// Messages are plain Go structs encoded as JSON, so any HTTP client can call
// a procedure with a POST of Content-Type application/json.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"

	"github.com/mmynk/ourfinance/internal/auth"
	"github.com/mmynk/ourfinance/internal/middleware"
	"github.com/mmynk/ourfinance/internal/service"
)

var errAuthDisabled = errors.New("authentication is not configured")

// Server implements the LedgerService and AuthService procedures.
type Server struct {
	ledger        *service.Ledger
	authenticator auth.Authenticator
	// jwtManager is nil when authentication is disabled; ledger procedures are then open.
	jwtManager *auth.JWTManager
}

// NewServer creates a new Server. Pass a nil jwtManager to serve without authentication.
func NewServer(ledger *service.Ledger, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *Server {
	return &Server{
		ledger:        ledger,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Handler returns a router serving every procedure.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// Routes mounts every procedure on r.
func (s *Server) Routes(r chi.Router) {
	// The first interceptor is the outermost, so the logger sees the signed-in owner.
	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if s.jwtManager != nil {
		interceptors = append([]connect.Interceptor{middleware.RequireAuth(s.jwtManager)}, interceptors...)
	}
	ledgerOpts := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(interceptors...),
		connect.WithRecover(recoverPanic),
	}
	authOpts := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
		connect.WithRecover(recoverPanic),
	}

	r.Handle(ListAccountsProcedure, unary(ListAccountsProcedure, s.ListAccounts, ledgerOpts...))
	r.Handle(CreateAccountProcedure, unary(CreateAccountProcedure, s.CreateAccount, ledgerOpts...))
	r.Handle(SetAccountActiveProcedure, unary(SetAccountActiveProcedure, s.SetAccountActive, ledgerOpts...))
	r.Handle(CorrectBalanceProcedure, unary(CorrectBalanceProcedure, s.CorrectBalance, ledgerOpts...))
	r.Handle(ListTransactionsProcedure, unary(ListTransactionsProcedure, s.ListTransactions, ledgerOpts...))
	r.Handle(AddTransactionProcedure, unary(AddTransactionProcedure, s.AddTransaction, ledgerOpts...))
	r.Handle(TransferFundsProcedure, unary(TransferFundsProcedure, s.TransferFunds, ledgerOpts...))
	r.Handle(RepayDebtProcedure, unary(RepayDebtProcedure, s.RepayDebt, ledgerOpts...))
	r.Handle(ListAssetsProcedure, unary(ListAssetsProcedure, s.ListAssets, ledgerOpts...))
	r.Handle(AddAssetProcedure, unary(AddAssetProcedure, s.AddAsset, ledgerOpts...))
	r.Handle(AddExistingAssetProcedure, unary(AddExistingAssetProcedure, s.AddExistingAsset, ledgerOpts...))
	r.Handle(ListDebtsProcedure, unary(ListDebtsProcedure, s.ListDebts, ledgerOpts...))
	r.Handle(MonthlyReportProcedure, unary(MonthlyReportProcedure, s.MonthlyReport, ledgerOpts...))
	r.Handle(DashboardProcedure, unary(DashboardProcedure, s.Dashboard, ledgerOpts...))
	r.Handle(ListSettingsProcedure, unary(ListSettingsProcedure, s.ListSettings, ledgerOpts...))
	r.Handle(UpdateDisplayNameProcedure, unary(UpdateDisplayNameProcedure, s.UpdateDisplayName, ledgerOpts...))

	r.Handle(LoginProcedure, unary(LoginProcedure, s.Login, authOpts...))
}

// unary adapts a plain method to a Connect handler, translating its errors.
func unary[Req, Res any](procedure string, fn func(context.Context, *Req) (*Res, error), opts ...connect.HandlerOption) http.Handler {
	return connect.NewUnaryHandler(procedure, func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Res], error) {
		res, err := fn(ctx, req.Msg)
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(res), nil
	}, opts...)
}

func recoverPanic(ctx context.Context, spec connect.Spec, _ http.Header, p any) error {
	slog.Error("Panic in handler", "procedure", spec.Procedure, "panic", p)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}

// Login exchanges a user's password for a session token.
func (s *Server) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if s.jwtManager == nil || s.authenticator == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, errAuthDisabled)
	}
	if req.User == "" || req.Password == "" {
		return nil, invalidArgument(auth.ErrInvalidCredentials)
	}

	// Passwords that could never have been hashed are rejected without a bcrypt comparison.
	if err := s.authenticator.ValidateCredential(req.Password); err != nil {
		slog.Warn("Login failed", "user", req.User, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	owner, err := s.authenticator.Authenticate(ctx, req.User, req.Password)
	if err != nil {
		slog.Warn("Login failed", "user", req.User, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expiresAt, err := s.jwtManager.Generate(owner)
	if err != nil {
		slog.Error("Failed to generate token", "owner", owner, "error", err)
		return nil, err
	}

	slog.Info("User logged in", "owner", owner)
	return &LoginResponse{Token: token, Owner: string(owner), ExpiresAt: expiresAt}, nil
}
