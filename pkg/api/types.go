// Package api defines the JSON request and response types of the sharetab
// RPC surface. Amounts travel as decimal strings so 128-bit values survive
// JSON number precision.
package api

import "github.com/sharetab/sharetab/internal/money"

// Group is the wire form of a group record.
type Group struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Creator   string   `json:"creator"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

// Expense is the wire form of an expense record.
type Expense struct {
	ID           uint64       `json:"id"`
	GroupID      uint64       `json:"group_id"`
	Description  string       `json:"description"`
	Amount       money.Amount `json:"amount"`
	PaidBy       string       `json:"paid_by"`
	SplitBetween []string     `json:"split_between"`
	Timestamp    int64        `json:"timestamp"`
	Settled      bool         `json:"settled"`
}

// Debt is one outstanding pairwise debt within a group.
type Debt struct {
	Debtor   string       `json:"debtor"`
	Creditor string       `json:"creditor"`
	Amount   money.Amount `json:"amount"`
}

// Balance is a net position against one other group member. Direction is
// "owes" when the queried user owes the other member, "owed" when the other
// member owes them.
type Balance struct {
	Other     string       `json:"other"`
	Amount    money.Amount `json:"amount"`
	Direction string       `json:"direction"`
}

// Payment is one settlement leg of a bulk settlement.
type Payment struct {
	To     string       `json:"to"`
	Amount money.Amount `json:"amount"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type JoinGroupRequest struct {
	GroupID uint64 `json:"group_id"`
}

type JoinGroupResponse struct {
	Group *Group `json:"group"`
}

type LeaveGroupRequest struct {
	GroupID uint64 `json:"group_id"`
}

type LeaveGroupResponse struct{}

type AddExpenseRequest struct {
	GroupID     uint64       `json:"group_id"`
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
	// SplitBetween defaults to the full group membership when empty.
	SplitBetween []string `json:"split_between,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type SettleDebtRequest struct {
	GroupID uint64       `json:"group_id"`
	To      string       `json:"to"`
	Amount  money.Amount `json:"amount"`
	// AttachedFunds is the value accompanying the call; it must cover Amount.
	AttachedFunds money.Amount `json:"attached_funds"`
}

type SettleDebtResponse struct {
	To        string       `json:"to"`
	Paid      money.Amount `json:"paid"`
	Remaining money.Amount `json:"remaining_debt"`
}

type SettleAllDebtsRequest struct {
	GroupID       uint64       `json:"group_id"`
	AttachedFunds money.Amount `json:"attached_funds"`
}

// SettleAllDebtsResponse reports the bulk settlement. Payments lists at most
// the first five legs; PaymentCount carries the true total.
type SettleAllDebtsResponse struct {
	TotalPaid    money.Amount `json:"total_paid"`
	PaymentCount int          `json:"payment_count"`
	Payments     []Payment    `json:"payments"`
}

type GetGroupRequest struct {
	GroupID uint64 `json:"group_id"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type GetUserGroupsRequest struct {
	// User defaults to the authenticated caller when empty.
	User       string `json:"user,omitempty"`
	Limit      uint32 `json:"limit,omitempty"`
	StartAfter uint64 `json:"start_after,omitempty"`
}

type GetUserGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type GetExpenseRequest struct {
	ExpenseID uint64 `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetGroupExpensesRequest struct {
	GroupID    uint64 `json:"group_id"`
	Limit      uint32 `json:"limit,omitempty"`
	StartAfter uint64 `json:"start_after,omitempty"`
}

type GetGroupExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetDebtsRequest struct {
	GroupID uint64 `json:"group_id"`
}

type GetDebtsResponse struct {
	Debts []Debt `json:"debts"`
}

type GetDebtRequest struct {
	GroupID  uint64 `json:"group_id"`
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
}

type GetDebtResponse struct {
	Amount money.Amount `json:"amount"`
}

type GetBalanceSummaryRequest struct {
	GroupID uint64 `json:"group_id"`
	// User defaults to the authenticated caller when empty.
	User string `json:"user,omitempty"`
}

type GetBalanceSummaryResponse struct {
	Balances    []Balance    `json:"balances"`
	TotalOwed   money.Amount `json:"total_owed"`
	TotalOwedTo money.Amount `json:"total_owed_to"`
	NetBalance  money.Amount `json:"net_balance"`
}

type RegisterRequest struct {
	Party       string `json:"party"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	Party       string `json:"party"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}

type LoginRequest struct {
	Party    string `json:"party"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Party       string `json:"party"`
	DisplayName string `json:"display_name"`
	Token       string `json:"token"`
}
