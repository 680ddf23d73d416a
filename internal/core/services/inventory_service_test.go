package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/core/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepository = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) Adjust(ctx context.Context, adj domain.StockAdjustment, effect domain.MovementEffect, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, adj, effect, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) AdjustInTx(ctx context.Context, tx pgx.Tx, adj domain.StockAdjustment, effect domain.MovementEffect, userID string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, tx, adj, effect, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItemsByAccessory(ctx context.Context, accessoryID string) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, accessoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindItem(ctx context.Context, accessoryID, location string) (*domain.InventoryItem, error) {
	args := m.Called(ctx, accessoryID, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) ListMovements(ctx context.Context, accessoryID string, limit, offset int) ([]domain.InventoryMovement, error) {
	args := m.Called(ctx, accessoryID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryMovement), args.Error(1)
}

// --- Suite ---

type InventoryServiceTestSuite struct {
	suite.Suite
	mockInvRepo       *MockInventoryRepository
	mockAccessoryRepo *MockAccessoryRepository
	mockAudit         *MockAuditRecorder
	service           portssvc.InventorySvcFacade

	userID    string
	accessory domain.Accessory
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInvRepo = new(MockInventoryRepository)
	suite.mockAccessoryRepo = new(MockAccessoryRepository)
	suite.mockAudit = new(MockAuditRecorder)

	suite.service = services.NewInventoryService(suite.mockInvRepo, suite.mockAccessoryRepo, suite.mockAudit)

	suite.userID = uuid.NewString()
	suite.accessory = domain.Accessory{AccessoryID: uuid.NewString(), Name: "Mattress", Category: "bedding", IsActive: true}
}

func (suite *InventoryServiceTestSuite) TestAdjust_Incoming() {
	ctx := context.Background()
	req := dto.AdjustStockRequest{
		AccessoryID: suite.accessory.AccessoryID,
		Location:    testLocation,
		Type:        "incoming",
		Qty:         10,
		Comment:     "initial delivery",
	}
	item := &domain.InventoryItem{
		ItemID:      uuid.NewString(),
		AccessoryID: suite.accessory.AccessoryID,
		Location:    testLocation,
		QtyOnHand:   10,
	}

	expectedEffect := domain.MovementEffect{OnHand: 1}
	expectedAdj := domain.StockAdjustment{
		AccessoryID: req.AccessoryID,
		Location:    req.Location,
		Type:        domain.MovementIncoming,
		Qty:         10,
		Comment:     "initial delivery",
	}

	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, req.AccessoryID).Return(&suite.accessory, nil).Once()
	suite.mockInvRepo.On("Adjust", ctx, expectedAdj, expectedEffect, suite.userID).Return(item, nil).Once()
	suite.mockAudit.On("Record", ctx, "inventory_item", item.ItemID, "stock.incoming", mock.Anything).Return(nil).Once()

	got, err := suite.service.Adjust(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(int64(10), got.QtyOnHand)
	suite.mockInvRepo.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAdjust_UnknownTypeFailsBeforeRepo() {
	ctx := context.Background()
	req := dto.AdjustStockRequest{
		AccessoryID: suite.accessory.AccessoryID,
		Location:    testLocation,
		Type:        "teleport",
		Qty:         1,
	}

	_, err := suite.service.Adjust(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccessoryRepo.AssertNotCalled(suite.T(), "FindAccessoryByID", mock.Anything, mock.Anything)
	suite.mockInvRepo.AssertNotCalled(suite.T(), "Adjust", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAdjust_UnknownAccessory() {
	ctx := context.Background()
	req := dto.AdjustStockRequest{
		AccessoryID: uuid.NewString(),
		Location:    testLocation,
		Type:        "incoming",
		Qty:         5,
	}

	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, req.AccessoryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Adjust(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvRepo.AssertNotCalled(suite.T(), "Adjust", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAdjust_InsufficientStockPropagates() {
	ctx := context.Background()
	req := dto.AdjustStockRequest{
		AccessoryID: suite.accessory.AccessoryID,
		Location:    testLocation,
		Type:        "issue",
		Qty:         3,
	}

	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, req.AccessoryID).Return(&suite.accessory, nil).Once()
	suite.mockInvRepo.On("Adjust", ctx, mock.Anything, domain.MovementEffect{OnHand: -1}, suite.userID).
		Return(nil, apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.Adjust(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAdjust_AuditFailureIsSwallowed() {
	ctx := context.Background()
	req := dto.AdjustStockRequest{
		AccessoryID: suite.accessory.AccessoryID,
		Location:    testLocation,
		Type:        "writeoff",
		Qty:         1,
	}
	item := &domain.InventoryItem{ItemID: uuid.NewString(), AccessoryID: req.AccessoryID, Location: testLocation, QtyOnHand: 4}

	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, req.AccessoryID).Return(&suite.accessory, nil).Once()
	suite.mockInvRepo.On("Adjust", ctx, mock.Anything, domain.MovementEffect{OnHand: -1}, suite.userID).Return(item, nil).Once()
	suite.mockAudit.On("Record", ctx, "inventory_item", item.ItemID, "stock.writeoff", mock.Anything).Return(assert.AnError).Once()

	got, err := suite.service.Adjust(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(item.ItemID, got.ItemID)
	suite.mockAudit.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestLevels() {
	ctx := context.Background()
	items := []domain.InventoryItem{
		{ItemID: uuid.NewString(), AccessoryID: suite.accessory.AccessoryID, Location: "main_warehouse", QtyOnHand: 5, QtyReserved: 2},
		{ItemID: uuid.NewString(), AccessoryID: suite.accessory.AccessoryID, Location: "showroom", QtyOnHand: 1},
	}

	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, suite.accessory.AccessoryID).Return(&suite.accessory, nil).Once()
	suite.mockInvRepo.On("FindItemsByAccessory", ctx, suite.accessory.AccessoryID).Return(items, nil).Once()

	got, err := suite.service.Levels(ctx, suite.accessory.AccessoryID)

	suite.Require().NoError(err)
	suite.Len(got, 2)
	suite.Equal(int64(3), got[0].Available())
}

func (suite *InventoryServiceTestSuite) TestLevels_UnknownAccessory() {
	ctx := context.Background()
	accessoryID := uuid.NewString()

	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, accessoryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Levels(ctx, accessoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInvRepo.AssertNotCalled(suite.T(), "FindItemsByAccessory", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestMovements_DefaultsLimit() {
	ctx := context.Background()
	movements := []domain.InventoryMovement{
		{MovementID: uuid.NewString(), AccessoryID: suite.accessory.AccessoryID, Type: domain.MovementIncoming, Qty: 10},
	}

	suite.mockInvRepo.On("ListMovements", ctx, suite.accessory.AccessoryID, 50, 0).Return(movements, nil).Once()

	got, err := suite.service.Movements(ctx, suite.accessory.AccessoryID, 0, 0)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.mockInvRepo.AssertExpectations(suite.T())
}

func TestInventoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
