package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/core/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockInvoiceRepository
	mockActivity *MockActivityService
	service      portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.mockActivity = new(MockActivityService)
	suite.service = services.NewInvoiceService(suite.mockRepo, suite.mockActivity)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AssignsSequentialNumber() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		Items: []dto.LineItemRequest{
			{Description: "Design", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("MaxInvoiceSequence", ctx, userID).Return(7, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-008" && inv.Status == domain.InvoiceDraft
	})).Return(nil).Once()
	suite.mockActivity.On("LogActivity", ctx, userID, domain.ActivityInvoice, "Invoice INV-008 created", mock.Anything).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal("INV-008", invoice.InvoiceNumber)
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockActivity.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DerivesTotals() {
	ctx := context.Background()
	userID := uuid.NewString()
	tax := decimal.NewFromInt(25)
	req := dto.CreateInvoiceRequest{
		Tax: &tax,
		Items: []dto.LineItemRequest{
			{Description: "Design", Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(100)},
			{Description: "Hosting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(50)},
		},
	}

	suite.mockRepo.On("MaxInvoiceSequence", ctx, userID).Return(0, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockActivity.On("LogActivity", ctx, userID, domain.ActivityInvoice, mock.Anything, mock.Anything).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().NoError(err)
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(250)), "subtotal should be 250, got %s", invoice.Subtotal)
	suite.True(invoice.Total.Equal(decimal.NewFromInt(275)), "total should be 275, got %s", invoice.Total)
	suite.True(invoice.Items[0].Amount.Equal(decimal.NewFromInt(200)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_AllowsZeroQuantity() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		Items: []dto.LineItemRequest{
			{Description: "Design", Quantity: decimal.Zero, Rate: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("MaxInvoiceSequence", ctx, userID).Return(0, nil).Once()
	suite.mockRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockActivity.On("LogActivity", ctx, userID, domain.ActivityInvoice, mock.Anything, mock.Anything).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, userID, req)

	suite.Require().NoError(err)
	suite.True(invoice.Subtotal.IsZero(), "subtotal should be zero, got %s", invoice.Subtotal)
	suite.True(invoice.Items[0].Amount.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_RejectsNegativeQuantity() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		Items: []dto.LineItemRequest{
			{Description: "Design", Quantity: decimal.NewFromInt(-1), Rate: decimal.NewFromInt(100)},
		},
	}

	invoice, err := suite.service.CreateInvoice(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(invoice)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ReplacesItemsAndRecomputes() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID:     invoiceID,
		UserID:        userID,
		InvoiceNumber: "INV-001",
		Status:        domain.InvoiceDraft,
		Tax:           decimal.NewFromInt(10),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), Description: "Old", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(500)},
		},
	}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return len(inv.Items) == 1 &&
			inv.Items[0].Description == "New" &&
			inv.Subtotal.Equal(decimal.NewFromInt(300)) &&
			inv.Total.Equal(decimal.NewFromInt(310))
	}), true).Return(nil).Once()

	req := dto.UpdateInvoiceRequest{
		Items: []dto.LineItemRequest{
			{Description: "New", Quantity: decimal.NewFromInt(3), Rate: decimal.NewFromInt(100)},
		},
	}
	updated, err := suite.service.UpdateInvoice(ctx, userID, invoiceID, req)

	suite.Require().NoError(err)
	suite.True(updated.Total.Equal(decimal.NewFromInt(310)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RejectsEditIntoPaid() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, UserID: userID, Status: domain.InvoiceSent}
	paid := domain.InvoicePaid

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(existing, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, userID, invoiceID, dto.UpdateInvoiceRequest{Status: &paid})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RejectsEditOutOfPaid() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, UserID: userID, Status: domain.InvoicePaid}
	draft := domain.InvoiceDraft

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(existing, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, userID, invoiceID, dto.UpdateInvoiceRequest{Status: &draft})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestSendInvoice_OnlyFromDraft() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, UserID: userID, InvoiceNumber: "INV-002", Status: domain.InvoicePaid}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(existing, nil).Once()

	_, err := suite.service.SendInvoice(ctx, userID, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestMarkInvoicePaid_StampsPaidDate() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{
		InvoiceID:     invoiceID,
		UserID:        userID,
		InvoiceNumber: "INV-003",
		Status:        domain.InvoiceOverdue,
		Total:         decimal.NewFromInt(750),
	}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.Status == domain.InvoicePaid && inv.PaidDate != nil
	}), false).Return(nil).Once()
	suite.mockActivity.On("LogActivity", ctx, userID, domain.ActivityPayment, "Invoice INV-003 marked as paid", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(750))
	})).Return(nil).Once()

	invoice, err := suite.service.MarkInvoicePaid(ctx, userID, invoiceID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, invoice.Status)
	suite.NotNil(invoice.PaidDate)
	suite.mockActivity.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestMarkInvoicePaid_RejectsDraft() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, UserID: userID, Status: domain.InvoiceDraft}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(existing, nil).Once()

	_, err := suite.service.MarkInvoicePaid(ctx, userID, invoiceID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func pastDue(days int) *time.Time {
	d := time.Now().AddDate(0, 0, -days)
	return &d
}

func (suite *InvoiceServiceTestSuite) TestRunOverduePass_MarksOnlyPastDue() {
	ctx := context.Background()
	userID := uuid.NewString()
	futureDue := time.Now().AddDate(0, 0, 10)
	sent := []domain.Invoice{
		{InvoiceID: "a", UserID: userID, InvoiceNumber: "INV-001", Status: domain.InvoiceSent, DueDate: pastDue(5), Total: decimal.NewFromInt(100)},
		{InvoiceID: "b", UserID: userID, InvoiceNumber: "INV-002", Status: domain.InvoiceSent, DueDate: &futureDue},
		{InvoiceID: "c", UserID: userID, InvoiceNumber: "INV-003", Status: domain.InvoiceSent}, // no due date
	}

	suite.mockRepo.On("FindInvoicesByStatus", ctx, userID, domain.InvoiceSent).Return(sent, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID == "a" && inv.Status == domain.InvoiceOverdue
	}), false).Return(nil).Once()
	suite.mockActivity.On("LogActivity", ctx, userID, domain.ActivityOverdue, "Overdue reminder sent for invoice INV-001", mock.Anything).Return(nil).Once()

	marked, err := suite.service.RunOverduePass(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(1, marked)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestRunOverduePass_SecondPassIsNoop() {
	// Invoices already flipped are no longer in sent status, so a repeat
	// sweep sees nothing to do.
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindInvoicesByStatus", ctx, userID, domain.InvoiceSent).Return([]domain.Invoice{}, nil).Once()

	marked, err := suite.service.RunOverduePass(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(0, marked)
}

func (suite *InvoiceServiceTestSuite) TestRunOverduePass_IsolatesFailures() {
	ctx := context.Background()
	userID := uuid.NewString()
	sent := []domain.Invoice{
		{InvoiceID: "a", UserID: userID, InvoiceNumber: "INV-001", Status: domain.InvoiceSent, DueDate: pastDue(3)},
		{InvoiceID: "b", UserID: userID, InvoiceNumber: "INV-002", Status: domain.InvoiceSent, DueDate: pastDue(2)},
	}

	suite.mockRepo.On("FindInvoicesByStatus", ctx, userID, domain.InvoiceSent).Return(sent, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID == "a"
	}), false).Return(assert.AnError).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.MatchedBy(func(inv domain.Invoice) bool {
		return inv.InvoiceID == "b"
	}), false).Return(nil).Once()
	suite.mockActivity.On("LogActivity", ctx, userID, domain.ActivityOverdue, "Overdue reminder sent for invoice INV-002", mock.Anything).Return(nil).Once()

	marked, err := suite.service.RunOverduePass(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(1, marked, "the failed write should not stop the sweep")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_LogsDeletion() {
	ctx := context.Background()
	userID := uuid.NewString()
	invoiceID := uuid.NewString()
	existing := &domain.Invoice{InvoiceID: invoiceID, UserID: userID, InvoiceNumber: "INV-009"}

	suite.mockRepo.On("FindInvoiceByID", ctx, userID, invoiceID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteInvoice", ctx, userID, invoiceID).Return(nil).Once()
	suite.mockActivity.On("LogActivity", ctx, userID, domain.ActivityDeletion, "Invoice INV-009 deleted", mock.Anything).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, userID, invoiceID)

	suite.Require().NoError(err)
	suite.mockActivity.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
