package services

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/billkhata/billkhata/internal/dto"
)

// BillSvcFacade manages bills and the bill-share payment state machine.
type BillSvcFacade interface {
	CreateBill(ctx context.Context, roomID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error)
	GetBill(ctx context.Context, roomID, billID, userID string) (*domain.Bill, error)
	ListBills(ctx context.Context, roomID, userID string) ([]domain.Bill, error)
	// TransitionShare applies one state-machine transition to the share of
	// targetUserID on the bill. Members may only submit their own share for
	// approval; approval, denial, and direct payment recording require the
	// room manager role. Approving an already-PAID share is a no-op.
	TransitionShare(ctx context.Context, roomID, billID, targetUserID string, req dto.ShareTransitionRequest, actorID string) (*domain.Bill, error)
}
