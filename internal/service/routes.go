package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/sharetab/sharetab/internal/auth"
	"github.com/sharetab/sharetab/internal/middleware"
)

// Procedure paths, one per RPC.
const (
	ProcedureRegister = "/sharetab.v1.AuthService/Register"
	ProcedureLogin    = "/sharetab.v1.AuthService/Login"

	ProcedureCreateGroup       = "/sharetab.v1.LedgerService/CreateGroup"
	ProcedureJoinGroup         = "/sharetab.v1.LedgerService/JoinGroup"
	ProcedureLeaveGroup        = "/sharetab.v1.LedgerService/LeaveGroup"
	ProcedureAddExpense        = "/sharetab.v1.LedgerService/AddExpense"
	ProcedureSettleDebt        = "/sharetab.v1.LedgerService/SettleDebt"
	ProcedureSettleAllDebts    = "/sharetab.v1.LedgerService/SettleAllDebts"
	ProcedureGetGroup          = "/sharetab.v1.LedgerService/GetGroup"
	ProcedureGetUserGroups     = "/sharetab.v1.LedgerService/GetUserGroups"
	ProcedureGetExpense        = "/sharetab.v1.LedgerService/GetExpense"
	ProcedureGetGroupExpenses  = "/sharetab.v1.LedgerService/GetGroupExpenses"
	ProcedureGetDebts          = "/sharetab.v1.LedgerService/GetDebts"
	ProcedureGetDebt           = "/sharetab.v1.LedgerService/GetDebt"
	ProcedureGetBalanceSummary = "/sharetab.v1.LedgerService/GetBalanceSummary"
)

// Codec returns the client option selecting the JSON message codec. Clients
// of this server must install it alongside their interceptors.
func Codec() connect.ClientOption {
	return connect.WithCodec(jsonCodec{})
}

// RegisterRoutes mounts every RPC on the mux. Auth procedures are open;
// everything else sits behind the JWT interceptor.
func RegisterRoutes(mux *http.ServeMux, ledgerSvc *LedgerService, authSvc *AuthService, jwtManager *auth.JWTManager) {
	open := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(),
			middleware.LoggingInterceptor(),
		),
	}
	authed := []connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(
			middleware.MetricsInterceptor(),
			middleware.RequireAuth(jwtManager),
			middleware.LoggingInterceptor(),
		),
	}

	mux.Handle(ProcedureRegister, connect.NewUnaryHandler(ProcedureRegister, authSvc.Register, open...))
	mux.Handle(ProcedureLogin, connect.NewUnaryHandler(ProcedureLogin, authSvc.Login, open...))

	mux.Handle(ProcedureCreateGroup, connect.NewUnaryHandler(ProcedureCreateGroup, ledgerSvc.CreateGroup, authed...))
	mux.Handle(ProcedureJoinGroup, connect.NewUnaryHandler(ProcedureJoinGroup, ledgerSvc.JoinGroup, authed...))
	mux.Handle(ProcedureLeaveGroup, connect.NewUnaryHandler(ProcedureLeaveGroup, ledgerSvc.LeaveGroup, authed...))
	mux.Handle(ProcedureAddExpense, connect.NewUnaryHandler(ProcedureAddExpense, ledgerSvc.AddExpense, authed...))
	mux.Handle(ProcedureSettleDebt, connect.NewUnaryHandler(ProcedureSettleDebt, ledgerSvc.SettleDebt, authed...))
	mux.Handle(ProcedureSettleAllDebts, connect.NewUnaryHandler(ProcedureSettleAllDebts, ledgerSvc.SettleAllDebts, authed...))
	mux.Handle(ProcedureGetGroup, connect.NewUnaryHandler(ProcedureGetGroup, ledgerSvc.GetGroup, authed...))
	mux.Handle(ProcedureGetUserGroups, connect.NewUnaryHandler(ProcedureGetUserGroups, ledgerSvc.GetUserGroups, authed...))
	mux.Handle(ProcedureGetExpense, connect.NewUnaryHandler(ProcedureGetExpense, ledgerSvc.GetExpense, authed...))
	mux.Handle(ProcedureGetGroupExpenses, connect.NewUnaryHandler(ProcedureGetGroupExpenses, ledgerSvc.GetGroupExpenses, authed...))
	mux.Handle(ProcedureGetDebts, connect.NewUnaryHandler(ProcedureGetDebts, ledgerSvc.GetDebts, authed...))
	mux.Handle(ProcedureGetDebt, connect.NewUnaryHandler(ProcedureGetDebt, ledgerSvc.GetDebt, authed...))
	mux.Handle(ProcedureGetBalanceSummary, connect.NewUnaryHandler(ProcedureGetBalanceSummary, ledgerSvc.GetBalanceSummary, authed...))
}
