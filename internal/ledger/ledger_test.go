package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sharetab/sharetab/internal/payments"
	"github.com/sharetab/sharetab/internal/storage/sqlite"
)

// bankRecorder captures transfer requests instead of moving value.
type bankRecorder struct {
	transfers []payments.Transfer
	refuse    bool
}

func (b *bankRecorder) Transfer(_ context.Context, t payments.Transfer) error {
	if b.refuse {
		return context.DeadlineExceeded
	}
	b.transfers = append(b.transfers, t)
	return nil
}

func newTestLedger(t *testing.T) (*Ledger, *bankRecorder) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	bank := &bankRecorder{}
	return New(store, bank), bank
}
