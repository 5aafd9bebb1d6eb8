package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/sharetab/sharetab/internal/ledger"
	"github.com/sharetab/sharetab/internal/middleware"
	"github.com/sharetab/sharetab/internal/models"
	"github.com/sharetab/sharetab/pkg/api"
)

// reportedPaymentsCap bounds how many settlement legs a bulk-settle response
// lists; PaymentCount still carries the true total.
const reportedPaymentsCap = 5

// LedgerService implements the LedgerService RPC surface on top of the
// ledger core. The caller's identity always comes from the request context
// set by the auth interceptor, never from the request body.
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

func apiGroup(g *models.Group) *api.Group {
	members := make([]string, len(g.Members))
	for i, m := range g.Members {
		members[i] = string(m)
	}
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Creator:   string(g.Creator),
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func apiExpense(e *models.Expense) *api.Expense {
	split := make([]string, len(e.SplitBetween))
	for i, p := range e.SplitBetween {
		split[i] = string(p)
	}
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       e.Amount,
		PaidBy:       string(e.PaidBy),
		SplitBetween: split,
		Timestamp:    e.Timestamp,
		Settled:      e.Settled,
	}
}

// CreateGroup creates a new group with the caller as its first member.
func (s *LedgerService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	caller := middleware.Party(ctx)
	slog.Info("CreateGroup request received",
		"caller", caller,
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	group, err := s.ledger.CreateGroup(ctx, caller, req.Msg.Name, req.Msg.Members)
	if err != nil {
		return nil, asConnectError(err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{Group: apiGroup(group)}), nil
}

// JoinGroup adds the caller to an existing group.
func (s *LedgerService) JoinGroup(ctx context.Context, req *connect.Request[api.JoinGroupRequest]) (*connect.Response[api.JoinGroupResponse], error) {
	caller := middleware.Party(ctx)
	slog.Info("JoinGroup request received", "caller", caller, "group_id", req.Msg.GroupID)

	if err := s.ledger.JoinGroup(ctx, caller, req.Msg.GroupID); err != nil {
		return nil, asConnectError(err)
	}

	group, err := s.ledger.Group(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&api.JoinGroupResponse{Group: apiGroup(group)}), nil
}

// LeaveGroup removes the caller from a group, provided they hold no debts in
// either direction.
func (s *LedgerService) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	caller := middleware.Party(ctx)
	slog.Info("LeaveGroup request received", "caller", caller, "group_id", req.Msg.GroupID)

	if err := s.ledger.LeaveGroup(ctx, caller, req.Msg.GroupID); err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&api.LeaveGroupResponse{}), nil
}

// AddExpense records an expense and fans its equal split out into the
// pairwise debt table.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	caller := middleware.Party(ctx)
	slog.Info("AddExpense request received",
		"caller", caller,
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
	)

	expense, err := s.ledger.AddExpense(ctx, caller, req.Msg.GroupID, req.Msg.Description, req.Msg.Amount, req.Msg.SplitBetween)
	if err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&api.AddExpenseResponse{Expense: apiExpense(expense)}), nil
}

// SettleDebt pays down one debt the caller owes.
func (s *LedgerService) SettleDebt(ctx context.Context, req *connect.Request[api.SettleDebtRequest]) (*connect.Response[api.SettleDebtResponse], error) {
	caller := middleware.Party(ctx)
	slog.Info("SettleDebt request received",
		"caller", caller,
		"group_id", req.Msg.GroupID,
		"to", req.Msg.To,
		"amount", req.Msg.Amount,
	)

	outcome, err := s.ledger.SettleDebt(ctx, caller, req.Msg.GroupID, req.Msg.To, req.Msg.Amount, req.Msg.AttachedFunds)
	if err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&api.SettleDebtResponse{
		To:        string(outcome.To),
		Paid:      outcome.Paid,
		Remaining: outcome.Remaining,
	}), nil
}

// SettleAllDebts pays off everything the caller owes in one group.
func (s *LedgerService) SettleAllDebts(ctx context.Context, req *connect.Request[api.SettleAllDebtsRequest]) (*connect.Response[api.SettleAllDebtsResponse], error) {
	caller := middleware.Party(ctx)
	slog.Info("SettleAllDebts request received", "caller", caller, "group_id", req.Msg.GroupID)

	outcome, err := s.ledger.SettleAllDebts(ctx, caller, req.Msg.GroupID, req.Msg.AttachedFunds)
	if err != nil {
		return nil, asConnectError(err)
	}

	reported := outcome.Payments
	if len(reported) > reportedPaymentsCap {
		reported = reported[:reportedPaymentsCap]
	}
	payments := make([]api.Payment, len(reported))
	for i, p := range reported {
		payments[i] = api.Payment{To: string(p.To), Amount: p.Amount}
	}

	return connect.NewResponse(&api.SettleAllDebtsResponse{
		TotalPaid:    outcome.TotalPaid,
		PaymentCount: len(outcome.Payments),
		Payments:     payments,
	}), nil
}

// GetGroup retrieves a group by ID.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	group, err := s.ledger.Group(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: apiGroup(group)}), nil
}

// GetUserGroups lists the groups a user belongs to, paginated.
func (s *LedgerService) GetUserGroups(ctx context.Context, req *connect.Request[api.GetUserGroupsRequest]) (*connect.Response[api.GetUserGroupsResponse], error) {
	user := req.Msg.User
	if user == "" {
		user = string(middleware.Party(ctx))
	}

	groups, err := s.ledger.UserGroups(ctx, user, ledger.Page{
		Limit:      req.Msg.Limit,
		StartAfter: req.Msg.StartAfter,
	})
	if err != nil {
		return nil, asConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = apiGroup(g)
	}
	return connect.NewResponse(&api.GetUserGroupsResponse{Groups: out}), nil
}

// GetExpense retrieves an expense by ID.
func (s *LedgerService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.ledger.Expense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: apiExpense(expense)}), nil
}

// GetGroupExpenses lists a group's expenses, paginated.
func (s *LedgerService) GetGroupExpenses(ctx context.Context, req *connect.Request[api.GetGroupExpensesRequest]) (*connect.Response[api.GetGroupExpensesResponse], error) {
	expenses, err := s.ledger.GroupExpenses(ctx, req.Msg.GroupID, ledger.Page{
		Limit:      req.Msg.Limit,
		StartAfter: req.Msg.StartAfter,
	})
	if err != nil {
		return nil, asConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = apiExpense(e)
	}
	return connect.NewResponse(&api.GetGroupExpensesResponse{Expenses: out}), nil
}

// GetDebts lists every outstanding debt within a group.
func (s *LedgerService) GetDebts(ctx context.Context, req *connect.Request[api.GetDebtsRequest]) (*connect.Response[api.GetDebtsResponse], error) {
	debts, err := s.ledger.Debts(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, asConnectError(err)
	}

	out := make([]api.Debt, len(debts))
	for i, d := range debts {
		out[i] = api.Debt{
			Debtor:   string(d.Debtor),
			Creditor: string(d.Creditor),
			Amount:   d.Amount,
		}
	}
	return connect.NewResponse(&api.GetDebtsResponse{Debts: out}), nil
}

// GetDebt returns the amount one member owes another, zero when none.
func (s *LedgerService) GetDebt(ctx context.Context, req *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error) {
	amount, err := s.ledger.Balance(ctx, req.Msg.GroupID, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&api.GetDebtResponse{Amount: amount}), nil
}

// GetBalanceSummary nets a user's position against every other group member.
func (s *LedgerService) GetBalanceSummary(ctx context.Context, req *connect.Request[api.GetBalanceSummaryRequest]) (*connect.Response[api.GetBalanceSummaryResponse], error) {
	user := req.Msg.User
	if user == "" {
		user = string(middleware.Party(ctx))
	}

	summary, err := s.ledger.BalanceSummary(ctx, req.Msg.GroupID, user)
	if err != nil {
		return nil, asConnectError(err)
	}

	balances := make([]api.Balance, len(summary.Balances))
	for i, b := range summary.Balances {
		direction := "owed"
		if b.Direction == ledger.DirectionOwes {
			direction = "owes"
		}
		balances[i] = api.Balance{
			Other:     string(b.Other),
			Amount:    b.Amount,
			Direction: direction,
		}
	}

	return connect.NewResponse(&api.GetBalanceSummaryResponse{
		Balances:    balances,
		TotalOwed:   summary.TotalOwed,
		TotalOwedTo: summary.TotalOwedTo,
		NetBalance:  summary.NetBalance,
	}), nil
}
