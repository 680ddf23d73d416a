package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/core/services"
	"github.com/renteq/rentalcrm/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testLocation = "main_warehouse"

// --- Mock DealRepository ---
type MockDealRepository struct {
	mock.Mock
}

var _ portsrepo.DealRepository = (*MockDealRepository)(nil)

func (m *MockDealRepository) CreateDealWithRental(ctx context.Context, agg portsrepo.DealWithRental, defaultLocation string) error {
	args := m.Called(ctx, agg, defaultLocation)
	return args.Error(0)
}

func (m *MockDealRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockDealRepository) FindRentalByDealID(ctx context.Context, dealID string) (*domain.Rental, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}

func (m *MockDealRepository) ListDeals(ctx context.Context, status *domain.DealStatus, limit, offset int) ([]domain.Deal, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealRepository) ActivateDeal(ctx context.Context, dealID string, userID string, now time.Time) (*domain.Deal, error) {
	args := m.Called(ctx, dealID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) CloseRental(ctx context.Context, rentalID string, kind domain.OutcomeKind, defaultLocation string, userID string, now time.Time) (*domain.Deal, *domain.Rental, error) {
	args := m.Called(ctx, rentalID, kind, defaultLocation, userID, now)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Deal), args.Get(1).(*domain.Rental), args.Error(2)
}

func (m *MockDealRepository) CancelDeal(ctx context.Context, dealID string, defaultLocation string, userID string, now time.Time) (*domain.Deal, error) {
	args := m.Called(ctx, dealID, defaultLocation, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockDealRepository) CreateExtension(ctx context.Context, extension domain.Deal, period domain.RentalPeriod, newEndDate time.Time, userID string) error {
	args := m.Called(ctx, extension, period, newEndDate, userID)
	return args.Error(0)
}

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

var _ portsrepo.AssetRepository = (*MockAssetRepository)(nil)

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) ListAssets(ctx context.Context, status *domain.AssetStatus, limit, offset int) ([]domain.Asset, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) UpdateAssetStatus(ctx context.Context, assetID string, status domain.AssetStatus, userID string) error {
	args := m.Called(ctx, assetID, status, userID)
	return args.Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepository = (*MockClientRepository)(nil)

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

// --- Mock AccessoryRepository ---
type MockAccessoryRepository struct {
	mock.Mock
}

var _ portsrepo.AccessoryRepository = (*MockAccessoryRepository)(nil)

func (m *MockAccessoryRepository) SaveAccessory(ctx context.Context, accessory domain.Accessory) error {
	args := m.Called(ctx, accessory)
	return args.Error(0)
}

func (m *MockAccessoryRepository) FindAccessoryByID(ctx context.Context, accessoryID string) (*domain.Accessory, error) {
	args := m.Called(ctx, accessoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Accessory), args.Error(1)
}

func (m *MockAccessoryRepository) ListAccessories(ctx context.Context, limit, offset int) ([]domain.Accessory, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Accessory), args.Error(1)
}

// --- Mock collaborators ---
type MockPaymentNotifier struct {
	mock.Mock
}

var _ portssvc.PaymentNotifier = (*MockPaymentNotifier)(nil)

func (m *MockPaymentNotifier) NotifyPayment(ctx context.Context, event domain.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockAuditRecorder struct {
	mock.Mock
}

var _ portssvc.AuditRecorder = (*MockAuditRecorder)(nil)

func (m *MockAuditRecorder) Record(ctx context.Context, entityType, entityID, action string, metadata map[string]string) error {
	args := m.Called(ctx, entityType, entityID, action, metadata)
	return args.Error(0)
}

type MockDocumentRequester struct {
	mock.Mock
}

var _ portssvc.DocumentRequester = (*MockDocumentRequester)(nil)

func (m *MockDocumentRequester) RequestDocument(ctx context.Context, dealID string, docType domain.DocType) error {
	args := m.Called(ctx, dealID, docType)
	return args.Error(0)
}

type MockDeliveryScheduler struct {
	mock.Mock
}

var _ portssvc.DeliveryScheduler = (*MockDeliveryScheduler)(nil)

func (m *MockDeliveryScheduler) ScheduleDelivery(ctx context.Context, rentalID string) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

func (m *MockDeliveryScheduler) SchedulePickup(ctx context.Context, rentalID string) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

// --- Suite ---

type DealServiceTestSuite struct {
	suite.Suite
	mockDealRepo      *MockDealRepository
	mockAssetRepo     *MockAssetRepository
	mockClientRepo    *MockClientRepository
	mockAccessoryRepo *MockAccessoryRepository
	mockPayments      *MockPaymentNotifier
	mockAudit         *MockAuditRecorder
	mockDocuments     *MockDocumentRequester
	mockDelivery      *MockDeliveryScheduler
	service           portssvc.DealSvcFacade

	userID    string
	client    domain.Client
	asset     domain.Asset
	accessory domain.Accessory
}

func (suite *DealServiceTestSuite) SetupTest() {
	suite.mockDealRepo = new(MockDealRepository)
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.mockClientRepo = new(MockClientRepository)
	suite.mockAccessoryRepo = new(MockAccessoryRepository)
	suite.mockPayments = new(MockPaymentNotifier)
	suite.mockAudit = new(MockAuditRecorder)
	suite.mockDocuments = new(MockDocumentRequester)
	suite.mockDelivery = new(MockDeliveryScheduler)

	suite.service = services.NewDealService(
		suite.mockDealRepo,
		suite.mockAssetRepo,
		suite.mockClientRepo,
		suite.mockAccessoryRepo,
		suite.mockPayments,
		suite.mockAudit,
		suite.mockDocuments,
		suite.mockDelivery,
		testLocation,
	)

	suite.userID = uuid.NewString()
	suite.client = domain.Client{ClientID: uuid.NewString(), Name: "Anna K.", IsActive: true}
	suite.asset = domain.Asset{AssetID: uuid.NewString(), Code: "ST-0042", Status: domain.AssetAvailable, IsActive: true}
	suite.accessory = domain.Accessory{AccessoryID: uuid.NewString(), Name: "Mattress", Category: "bedding", IsActive: true}

	// Post-commit collaborators are best-effort: allow them by default.
	suite.mockAudit.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockDocuments.On("RequestDocument", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	suite.mockDelivery.On("ScheduleDelivery", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (suite *DealServiceTestSuite) validCreateRequest() dto.CreateDealRequest {
	return dto.CreateDealRequest{
		ClientID:      suite.client.ClientID,
		AssetID:       suite.asset.AssetID,
		Type:          domain.DealRent,
		StartDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		RentCents:     10000,
		DeliveryCents: 2000,
		DiscountCents: 1000,
		Lines: []dto.AccessoryLineRequest{
			{AccessoryID: suite.accessory.AccessoryID, Qty: 2, PriceCents: 500},
		},
	}
}

// --- CreateDealWithRental ---

func (suite *DealServiceTestSuite) TestCreateDeal_Success() {
	ctx := context.Background()
	req := suite.validCreateRequest()

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, suite.accessory.AccessoryID).Return(&suite.accessory, nil).Once()

	var savedAgg portsrepo.DealWithRental
	suite.mockDealRepo.On("CreateDealWithRental", ctx, mock.AnythingOfType("repositories.DealWithRental"), testLocation).
		Run(func(args mock.Arguments) {
			savedAgg = args.Get(1).(portsrepo.DealWithRental)
		}).
		Return(nil).Once()

	deal, err := suite.service.CreateDealWithRental(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(deal)
	suite.NotEmpty(deal.DealID)
	suite.Equal(domain.DealBooked, deal.Status)
	suite.Equal(suite.userID, deal.CreatedBy)
	_, isExtension := deal.Origin.Extension()
	suite.False(isExtension)

	// Derived amounts: 10000 + 2000 - 1000 + 2x500 billed line.
	suite.Equal(int64(12000), savedAgg.Rental.TotalCents)
	suite.Equal(3, savedAgg.Rental.PlannedMonths)
	suite.Equal(deal.DealID, savedAgg.Period.DealID)
	suite.Equal(savedAgg.Rental.RentalID, savedAgg.Period.RentalID)
	suite.Len(savedAgg.Rental.Lines, 1)

	suite.mockDealRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestCreateDeal_SchedulesDeliveryWhenAddressSet() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.DeliveryAddress = "12 Garden Lane"

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, suite.accessory.AccessoryID).Return(&suite.accessory, nil).Once()
	suite.mockDealRepo.On("CreateDealWithRental", ctx, mock.Anything, testLocation).Return(nil).Once()

	_, err := suite.service.CreateDealWithRental(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockDelivery.AssertCalled(suite.T(), "ScheduleDelivery", ctx, mock.AnythingOfType("string"))
}

func (suite *DealServiceTestSuite) TestCreateDeal_AssetNotAvailable() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	rentedAsset := suite.asset
	rentedAsset.Status = domain.AssetRented

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.asset.AssetID).Return(&rentedAsset, nil).Once()

	_, err := suite.service.CreateDealWithRental(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "CreateDealWithRental", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestCreateDeal_TerminalInitialStatusRejected() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	canceled := string(domain.DealCanceled)
	req.InitialStatus = &canceled

	_, err := suite.service.CreateDealWithRental(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClientRepo.AssertNotCalled(suite.T(), "FindClientByID", mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestCreateDeal_EndDateNotAfterStart() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.EndDate = req.StartDate

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, suite.accessory.AccessoryID).Return(&suite.accessory, nil).Once()

	_, err := suite.service.CreateDealWithRental(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "CreateDealWithRental", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestCreateDeal_RepoFailureSkipsNotifications() {
	ctx := context.Background()
	req := suite.validCreateRequest()
	req.DeliveryAddress = "12 Garden Lane"

	suite.mockClientRepo.On("FindClientByID", ctx, suite.client.ClientID).Return(&suite.client, nil).Once()
	suite.mockAssetRepo.On("FindAssetByID", ctx, suite.asset.AssetID).Return(&suite.asset, nil).Once()
	suite.mockAccessoryRepo.On("FindAccessoryByID", ctx, suite.accessory.AccessoryID).Return(&suite.accessory, nil).Once()
	suite.mockDealRepo.On("CreateDealWithRental", ctx, mock.Anything, testLocation).
		Return(apperrors.ErrInsufficientStock).Once()

	_, err := suite.service.CreateDealWithRental(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocuments.AssertNotCalled(suite.T(), "RequestDocument", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDelivery.AssertNotCalled(suite.T(), "ScheduleDelivery", mock.Anything, mock.Anything)
}

// --- ActivateDeal ---

func (suite *DealServiceTestSuite) TestActivateDeal_Success() {
	ctx := context.Background()
	dealID := uuid.NewString()
	booked := &domain.Deal{DealID: dealID, Status: domain.DealBooked}
	active := &domain.Deal{DealID: dealID, Status: domain.DealActive}

	suite.mockDealRepo.On("FindDealByID", ctx, dealID).Return(booked, nil).Once()
	suite.mockDealRepo.On("ActivateDeal", ctx, dealID, suite.userID, mock.AnythingOfType("time.Time")).Return(active, nil).Once()

	deal, err := suite.service.ActivateDeal(ctx, dealID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DealActive, deal.Status)
	suite.mockDocuments.AssertCalled(suite.T(), "RequestDocument", ctx, dealID, domain.DocTransferAct)
	suite.mockDealRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestActivateDeal_FromLeadFails() {
	ctx := context.Background()
	dealID := uuid.NewString()
	lead := &domain.Deal{DealID: dealID, Status: domain.DealLead}

	suite.mockDealRepo.On("FindDealByID", ctx, dealID).Return(lead, nil).Once()

	_, err := suite.service.ActivateDeal(ctx, dealID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "ActivateDeal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ExtendRental ---

func (suite *DealServiceTestSuite) TestExtendRental_Success() {
	ctx := context.Background()
	parentDealID := uuid.NewString()
	rentalID := uuid.NewString()
	endDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rental := &domain.Rental{
		RentalID:  rentalID,
		DealID:    parentDealID,
		AssetID:   suite.asset.AssetID,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   endDate,
		Outcome:   domain.OpenRental(),
	}
	parent := &domain.Deal{DealID: parentDealID, ClientID: suite.client.ClientID, Type: domain.DealRent, Status: domain.DealActive}

	req := dto.ExtendRentalRequest{
		RentalID:   rentalID,
		NewEndDate: endDate.AddDate(0, 2, 0),
		RentCents:  10000,
	}

	suite.mockDealRepo.On("FindRentalByID", ctx, rentalID).Return(rental, nil).Once()
	suite.mockDealRepo.On("FindDealByID", ctx, parentDealID).Return(parent, nil).Once()

	var savedExtension domain.Deal
	var savedPeriod domain.RentalPeriod
	suite.mockDealRepo.On("CreateExtension", ctx, mock.AnythingOfType("domain.Deal"), mock.AnythingOfType("domain.RentalPeriod"), req.NewEndDate, suite.userID).
		Run(func(args mock.Arguments) {
			savedExtension = args.Get(1).(domain.Deal)
			savedPeriod = args.Get(2).(domain.RentalPeriod)
		}).
		Return(nil).Once()

	extension, err := suite.service.ExtendRental(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(extension)
	suite.Equal(domain.DealExtended, extension.Status)
	suite.Equal(parent.ClientID, extension.ClientID)

	gotParent, isExtension := savedExtension.Origin.Extension()
	suite.True(isExtension)
	suite.Equal(parentDealID, gotParent)

	// The new billing period starts where the original term ended.
	suite.Equal(endDate, savedPeriod.StartDate)
	suite.Equal(req.NewEndDate, savedPeriod.EndDate)
	suite.Equal(int64(10000), savedPeriod.TotalCents)
	suite.Equal(rentalID, savedPeriod.RentalID)

	suite.mockDealRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestExtendRental_CanceledDealFails() {
	ctx := context.Background()
	parentDealID := uuid.NewString()
	rentalID := uuid.NewString()

	rental := &domain.Rental{
		RentalID: rentalID,
		DealID:   parentDealID,
		EndDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Outcome:  domain.OpenRental(),
	}
	canceled := &domain.Deal{DealID: parentDealID, Status: domain.DealCanceled}

	suite.mockDealRepo.On("FindRentalByID", ctx, rentalID).Return(rental, nil).Once()
	suite.mockDealRepo.On("FindDealByID", ctx, parentDealID).Return(canceled, nil).Once()

	_, err := suite.service.ExtendRental(ctx, dto.ExtendRentalRequest{
		RentalID:   rentalID,
		NewEndDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "CreateExtension", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestExtendRental_ClosedRentalFails() {
	ctx := context.Background()
	rentalID := uuid.NewString()
	closedAt := time.Now()
	outcome, err := domain.ClosedOutcome(domain.OutcomeClosedReturn, closedAt)
	suite.Require().NoError(err)

	rental := &domain.Rental{RentalID: rentalID, DealID: uuid.NewString(), Outcome: outcome}
	suite.mockDealRepo.On("FindRentalByID", ctx, rentalID).Return(rental, nil).Once()

	_, err = suite.service.ExtendRental(ctx, dto.ExtendRentalRequest{
		RentalID:   rentalID,
		NewEndDate: closedAt.AddDate(0, 1, 0),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "FindDealByID", mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestExtendRental_EndDateMustMoveForward() {
	ctx := context.Background()
	parentDealID := uuid.NewString()
	rentalID := uuid.NewString()
	endDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rental := &domain.Rental{RentalID: rentalID, DealID: parentDealID, EndDate: endDate, Outcome: domain.OpenRental()}
	parent := &domain.Deal{DealID: parentDealID, Status: domain.DealActive}

	suite.mockDealRepo.On("FindRentalByID", ctx, rentalID).Return(rental, nil).Once()
	suite.mockDealRepo.On("FindDealByID", ctx, parentDealID).Return(parent, nil).Once()

	_, err := suite.service.ExtendRental(ctx, dto.ExtendRentalRequest{
		RentalID:   rentalID,
		NewEndDate: endDate,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "CreateExtension", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Close ---

func (suite *DealServiceTestSuite) openRentalFixture() (*domain.Deal, *domain.Rental) {
	dealID := uuid.NewString()
	deal := &domain.Deal{DealID: dealID, Status: domain.DealActive}
	rental := &domain.Rental{
		RentalID: uuid.NewString(),
		DealID:   dealID,
		AssetID:  suite.asset.AssetID,
		Outcome:  domain.OpenRental(),
	}
	return deal, rental
}

func (suite *DealServiceTestSuite) TestCloseRentalByReturn_Success() {
	ctx := context.Background()
	deal, rental := suite.openRentalFixture()

	closedDeal := &domain.Deal{DealID: deal.DealID, Status: domain.DealClosedReturn}
	closedAt := time.Now()
	outcome, err := domain.ClosedOutcome(domain.OutcomeClosedReturn, closedAt)
	suite.Require().NoError(err)
	closedRental := &domain.Rental{RentalID: rental.RentalID, DealID: deal.DealID, AssetID: rental.AssetID, Outcome: outcome}

	suite.mockDealRepo.On("FindRentalByID", ctx, rental.RentalID).Return(rental, nil).Once()
	suite.mockDealRepo.On("FindDealByID", ctx, deal.DealID).Return(deal, nil).Once()
	suite.mockDealRepo.On("CloseRental", ctx, rental.RentalID, domain.OutcomeClosedReturn, testLocation, suite.userID, mock.AnythingOfType("time.Time")).
		Return(closedDeal, closedRental, nil).Once()

	err = suite.service.CloseRentalByReturn(ctx, rental.RentalID, suite.userID)

	suite.Require().NoError(err)
	suite.mockDocuments.AssertCalled(suite.T(), "RequestDocument", ctx, deal.DealID, domain.DocReturnAct)
	suite.mockPayments.AssertNotCalled(suite.T(), "NotifyPayment", mock.Anything, mock.Anything)
	suite.mockDealRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestCloseRentalByBuyout_EmitsPaymentEvent() {
	ctx := context.Background()
	deal, rental := suite.openRentalFixture()

	closedDeal := &domain.Deal{DealID: deal.DealID, Status: domain.DealClosedPurchase}
	outcome, err := domain.ClosedOutcome(domain.OutcomeClosedPurchase, time.Now())
	suite.Require().NoError(err)
	closedRental := &domain.Rental{RentalID: rental.RentalID, DealID: deal.DealID, Outcome: outcome}

	suite.mockDealRepo.On("FindRentalByID", ctx, rental.RentalID).Return(rental, nil).Once()
	suite.mockDealRepo.On("FindDealByID", ctx, deal.DealID).Return(deal, nil).Once()
	suite.mockDealRepo.On("CloseRental", ctx, rental.RentalID, domain.OutcomeClosedPurchase, testLocation, suite.userID, mock.AnythingOfType("time.Time")).
		Return(closedDeal, closedRental, nil).Once()

	var event domain.PaymentEvent
	suite.mockPayments.On("NotifyPayment", ctx, mock.AnythingOfType("domain.PaymentEvent")).
		Run(func(args mock.Arguments) {
			event = args.Get(1).(domain.PaymentEvent)
		}).
		Return(nil).Once()

	amount := int64(50000)
	err = suite.service.CloseRentalByBuyout(ctx, rental.RentalID, &amount, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentSale, event.Kind)
	suite.Equal(int64(50000), event.AmountCents)
	suite.Equal(deal.DealID, event.DealID)
	suite.Equal(rental.RentalID, event.RentalID)
	suite.mockDocuments.AssertCalled(suite.T(), "RequestDocument", ctx, deal.DealID, domain.DocBuyout)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestCloseRentalByBuyout_NoAmountNoPayment() {
	ctx := context.Background()
	deal, rental := suite.openRentalFixture()

	closedDeal := &domain.Deal{DealID: deal.DealID, Status: domain.DealClosedPurchase}
	outcome, err := domain.ClosedOutcome(domain.OutcomeClosedPurchase, time.Now())
	suite.Require().NoError(err)
	closedRental := &domain.Rental{RentalID: rental.RentalID, DealID: deal.DealID, Outcome: outcome}

	suite.mockDealRepo.On("FindRentalByID", ctx, rental.RentalID).Return(rental, nil).Once()
	suite.mockDealRepo.On("FindDealByID", ctx, deal.DealID).Return(deal, nil).Once()
	suite.mockDealRepo.On("CloseRental", ctx, rental.RentalID, domain.OutcomeClosedPurchase, testLocation, suite.userID, mock.AnythingOfType("time.Time")).
		Return(closedDeal, closedRental, nil).Once()

	err = suite.service.CloseRentalByBuyout(ctx, rental.RentalID, nil, suite.userID)

	suite.Require().NoError(err)
	suite.mockPayments.AssertNotCalled(suite.T(), "NotifyPayment", mock.Anything, mock.Anything)
}

func (suite *DealServiceTestSuite) TestCloseRental_AlreadyClosedFails() {
	ctx := context.Background()
	rentalID := uuid.NewString()
	outcome, err := domain.ClosedOutcome(domain.OutcomeClosedReturn, time.Now())
	suite.Require().NoError(err)
	rental := &domain.Rental{RentalID: rentalID, DealID: uuid.NewString(), Outcome: outcome}

	suite.mockDealRepo.On("FindRentalByID", ctx, rentalID).Return(rental, nil).Once()

	err = suite.service.CloseRentalByReturn(ctx, rentalID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "CloseRental", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Cancel ---

func (suite *DealServiceTestSuite) TestCancelDeal_Success() {
	ctx := context.Background()
	dealID := uuid.NewString()
	booked := &domain.Deal{DealID: dealID, Status: domain.DealBooked}
	canceled := &domain.Deal{DealID: dealID, Status: domain.DealCanceled}

	suite.mockDealRepo.On("FindDealByID", ctx, dealID).Return(booked, nil).Once()
	suite.mockDealRepo.On("CancelDeal", ctx, dealID, testLocation, suite.userID, mock.AnythingOfType("time.Time")).Return(canceled, nil).Once()

	err := suite.service.CancelDeal(ctx, dealID, suite.userID)

	suite.Require().NoError(err)
	suite.mockDealRepo.AssertExpectations(suite.T())
}

func (suite *DealServiceTestSuite) TestCancelDeal_TerminalFails() {
	ctx := context.Background()
	dealID := uuid.NewString()
	closed := &domain.Deal{DealID: dealID, Status: domain.DealClosedPurchase}

	suite.mockDealRepo.On("FindDealByID", ctx, dealID).Return(closed, nil).Once()

	err := suite.service.CancelDeal(ctx, dealID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
	suite.mockDealRepo.AssertNotCalled(suite.T(), "CancelDeal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *DealServiceTestSuite) TestGetDeal_NotFound() {
	ctx := context.Background()
	dealID := uuid.NewString()
	suite.mockDealRepo.On("FindDealByID", ctx, dealID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetDeal(ctx, dealID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DealServiceTestSuite) TestListDeals_DefaultsLimit() {
	ctx := context.Background()
	status := domain.DealActive
	expected := []domain.Deal{{DealID: uuid.NewString(), Status: domain.DealActive}}

	suite.mockDealRepo.On("ListDeals", ctx, &status, 50, 0).Return(expected, nil).Once()

	deals, err := suite.service.ListDeals(ctx, &status, 0, 0)

	suite.Require().NoError(err)
	suite.Len(deals, 1)
	suite.mockDealRepo.AssertExpectations(suite.T())
}

func TestDealServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DealServiceTestSuite))
}
