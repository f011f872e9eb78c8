package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/freelanceflow/ff_backend/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) GetClientByID(ctx context.Context, userID string, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) ListClients(ctx context.Context, userID string) ([]domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientService) CreateClient(ctx context.Context, userID string, req dto.CreateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) UpdateClient(ctx context.Context, userID string, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	args := m.Called(ctx, userID, clientID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientService) DeleteClient(ctx context.Context, userID string, clientID string) error {
	args := m.Called(ctx, userID, clientID)
	return args.Error(0)
}

type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, userID string, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectService) CreateProject(ctx context.Context, userID string, req dto.CreateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, userID string, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	args := m.Called(ctx, userID, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, userID string, projectID string) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) GetInvoiceByID(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.String(1), args.Error(2)
}

func (m *MockInvoiceService) CreateInvoice(ctx context.Context, userID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) UpdateInvoice(ctx context.Context, userID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) DeleteInvoice(ctx context.Context, userID string, invoiceID string) error {
	args := m.Called(ctx, userID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) SendInvoice(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) MarkInvoicePaid(ctx context.Context, userID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) RunOverduePass(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) LogActivity(ctx context.Context, userID string, activityType domain.ActivityType, message string, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, activityType, message, amount)
	return args.Error(0)
}

func (m *MockActivityService) ListRecentActivity(ctx context.Context, userID string) ([]domain.ActivityLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityLog), args.Error(1)
}

type StoreTestSuite struct {
	suite.Suite
	userID       string
	mockClient   *MockClientService
	mockProject  *MockProjectService
	mockInvoice  *MockInvoiceService
	mockActivity *MockActivityService
	store        *store.Store
}

func (suite *StoreTestSuite) SetupTest() {
	suite.userID = uuid.NewString()
	suite.mockClient = new(MockClientService)
	suite.mockProject = new(MockProjectService)
	suite.mockInvoice = new(MockInvoiceService)
	suite.mockActivity = new(MockActivityService)
	container := &portssvc.ServiceContainer{
		Client:   suite.mockClient,
		Project:  suite.mockProject,
		Invoice:  suite.mockInvoice,
		Activity: suite.mockActivity,
	}
	suite.store = store.NewStore(suite.userID, container)
}

func (suite *StoreTestSuite) expectLoad(clients []domain.Client, projects []domain.Project, invoices []domain.Invoice, activity []domain.ActivityLog) {
	ctx := mock.Anything
	suite.mockInvoice.On("RunOverduePass", ctx, suite.userID).Return(0, nil).Once()
	suite.mockClient.On("ListClients", ctx, suite.userID).Return(clients, nil).Once()
	suite.mockProject.On("ListProjects", ctx, suite.userID).Return(projects, nil).Once()
	suite.mockInvoice.On("ListInvoices", ctx, suite.userID, dto.ListInvoicesParams{}).Return(invoices, "", nil).Once()
	suite.mockActivity.On("ListRecentActivity", ctx, suite.userID).Return(activity, nil).Once()
}

func (suite *StoreTestSuite) TestLoad_RunsOverduePassAndPopulatesSnapshot() {
	clients := []domain.Client{{ClientID: uuid.NewString(), Name: "Acme"}}
	invoices := []domain.Invoice{{InvoiceID: uuid.NewString(), InvoiceNumber: "INV-001"}}
	suite.expectLoad(clients, nil, invoices, nil)

	err := suite.store.Load(context.Background())

	suite.Require().NoError(err)
	suite.True(suite.store.Loaded())
	suite.Equal(clients, suite.store.Clients())
	suite.Equal(invoices, suite.store.Invoices())
	suite.mockInvoice.AssertExpectations(suite.T())
}

func (suite *StoreTestSuite) TestLoad_FollowsInvoicePagination() {
	page1 := []domain.Invoice{{InvoiceID: "a"}, {InvoiceID: "b"}}
	page2 := []domain.Invoice{{InvoiceID: "c"}}
	ctx := mock.Anything
	suite.mockInvoice.On("RunOverduePass", ctx, suite.userID).Return(0, nil).Once()
	suite.mockClient.On("ListClients", ctx, suite.userID).Return([]domain.Client{}, nil).Once()
	suite.mockProject.On("ListProjects", ctx, suite.userID).Return([]domain.Project{}, nil).Once()
	suite.mockInvoice.On("ListInvoices", ctx, suite.userID, dto.ListInvoicesParams{}).Return(page1, "tok", nil).Once()
	suite.mockInvoice.On("ListInvoices", ctx, suite.userID, dto.ListInvoicesParams{NextToken: "tok"}).Return(page2, "", nil).Once()
	suite.mockActivity.On("ListRecentActivity", ctx, suite.userID).Return([]domain.ActivityLog{}, nil).Once()

	err := suite.store.Load(context.Background())

	suite.Require().NoError(err)
	suite.Len(suite.store.Invoices(), 3)
}

func (suite *StoreTestSuite) TestCreateClient_AppendsOnlyOnSuccess() {
	suite.expectLoad(nil, nil, nil, nil)
	suite.Require().NoError(suite.store.Load(context.Background()))

	ctx := mock.Anything
	req := dto.CreateClientRequest{Name: "Acme", Email: "a@b.test"}
	created := &domain.Client{ClientID: uuid.NewString(), Name: "Acme"}
	suite.mockClient.On("CreateClient", ctx, suite.userID, req).Return(created, nil).Once()
	suite.mockActivity.On("ListRecentActivity", ctx, suite.userID).Return([]domain.ActivityLog{{Message: `New client "Acme" added`}}, nil).Once()

	client, err := suite.store.CreateClient(context.Background(), req)

	suite.Require().NoError(err)
	suite.Equal(created.ClientID, client.ClientID)
	suite.Len(suite.store.Clients(), 1)
	suite.Len(suite.store.Activity(), 1)
}

func (suite *StoreTestSuite) TestCreateClient_FailureLeavesSnapshotUntouched() {
	suite.expectLoad(nil, nil, nil, nil)
	suite.Require().NoError(suite.store.Load(context.Background()))

	req := dto.CreateClientRequest{Name: "Acme", Email: "a@b.test"}
	suite.mockClient.On("CreateClient", mock.Anything, suite.userID, req).Return(nil, assert.AnError).Once()

	client, err := suite.store.CreateClient(context.Background(), req)

	suite.Require().Error(err)
	suite.Nil(client)
	suite.Empty(suite.store.Clients())
	suite.mockActivity.AssertNumberOfCalls(suite.T(), "ListRecentActivity", 1)
}

func (suite *StoreTestSuite) TestUpdateClient_SwapsEntryWithoutTouchingFeed() {
	existing := domain.Client{ClientID: uuid.NewString(), Name: "Old"}
	suite.expectLoad([]domain.Client{existing}, nil, nil, nil)
	suite.Require().NoError(suite.store.Load(context.Background()))

	name := "New"
	updated := &domain.Client{ClientID: existing.ClientID, Name: name}
	req := dto.UpdateClientRequest{Name: &name}
	suite.mockClient.On("UpdateClient", mock.Anything, suite.userID, existing.ClientID, req).Return(updated, nil).Once()

	client, err := suite.store.UpdateClient(context.Background(), existing.ClientID, req)

	suite.Require().NoError(err)
	suite.Equal("New", client.Name)
	suite.Equal("New", suite.store.Clients()[0].Name)
	suite.mockActivity.AssertNumberOfCalls(suite.T(), "ListRecentActivity", 1)
}

func (suite *StoreTestSuite) TestDeleteInvoice_RemovesEntryAndRefreshesFeed() {
	inv := domain.Invoice{InvoiceID: uuid.NewString(), InvoiceNumber: "INV-003"}
	suite.expectLoad(nil, nil, []domain.Invoice{inv}, nil)
	suite.Require().NoError(suite.store.Load(context.Background()))

	suite.mockInvoice.On("DeleteInvoice", mock.Anything, suite.userID, inv.InvoiceID).Return(nil).Once()
	suite.mockActivity.On("ListRecentActivity", mock.Anything, suite.userID).Return([]domain.ActivityLog{{Message: "Invoice INV-003 deleted"}}, nil).Once()

	err := suite.store.DeleteInvoice(context.Background(), inv.InvoiceID)

	suite.Require().NoError(err)
	suite.Empty(suite.store.Invoices())
	suite.Equal("Invoice INV-003 deleted", suite.store.Activity()[0].Message)
}

func (suite *StoreTestSuite) TestActivityFeedCappedAtTwenty() {
	entries := make([]domain.ActivityLog, 25)
	for i := range entries {
		entries[i] = domain.ActivityLog{ActivityID: fmt.Sprintf("a-%d", i)}
	}
	suite.expectLoad(nil, nil, nil, entries)

	suite.Require().NoError(suite.store.Load(context.Background()))

	suite.Len(suite.store.Activity(), domain.ActivityFeedLimit)
	suite.Equal("a-0", suite.store.Activity()[0].ActivityID)
}

func (suite *StoreTestSuite) TestRunOverduePass_ReloadsInvoicesWhenFlipped() {
	sent := domain.Invoice{InvoiceID: uuid.NewString(), Status: domain.InvoiceSent}
	suite.expectLoad(nil, nil, []domain.Invoice{sent}, nil)
	suite.Require().NoError(suite.store.Load(context.Background()))

	overdue := sent
	overdue.Status = domain.InvoiceOverdue
	ctx := mock.Anything
	suite.mockInvoice.On("RunOverduePass", ctx, suite.userID).Return(1, nil).Once()
	suite.mockInvoice.On("ListInvoices", ctx, suite.userID, dto.ListInvoicesParams{}).Return([]domain.Invoice{overdue}, "", nil).Once()
	suite.mockActivity.On("ListRecentActivity", ctx, suite.userID).Return([]domain.ActivityLog{}, nil).Once()

	flipped, err := suite.store.RunOverduePass(context.Background())

	suite.Require().NoError(err)
	suite.Equal(1, flipped)
	suite.Equal(domain.InvoiceOverdue, suite.store.Invoices()[0].Status)
}

func (suite *StoreTestSuite) TestRunOverduePass_NoopSkipsReload() {
	suite.expectLoad(nil, nil, nil, nil)
	suite.Require().NoError(suite.store.Load(context.Background()))

	suite.mockInvoice.On("RunOverduePass", mock.Anything, suite.userID).Return(0, nil).Once()

	flipped, err := suite.store.RunOverduePass(context.Background())

	suite.Require().NoError(err)
	suite.Zero(flipped)
	suite.mockInvoice.AssertNumberOfCalls(suite.T(), "ListInvoices", 1)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestManagerReturnsSameStorePerUser(t *testing.T) {
	container := &portssvc.ServiceContainer{}
	m := store.NewManager(container)

	a := m.Get("user-1")
	b := m.Get("user-1")
	c := m.Get("user-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)

	m.Drop("user-1")
	assert.NotSame(t, a, m.Get("user-1"))
}
