package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velline/salon-booking-service/internal/domain"
	promoRepo "github.com/velline/salon-booking-service/internal/infra/storage/promo"
	"github.com/velline/salon-booking-service/internal/integrations/notifier"
	"github.com/velline/salon-booking-service/pkg/ptr"
	"github.com/velline/salon-booking-service/pkg/types"
)

type fakeReservationRepo struct {
	blocking  []*domain.Reservation
	created   *domain.Reservation
	createErr error
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	res.ID = 101
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	f.created = res
	return res, nil
}

func (f *fakeReservationRepo) GetBlockingByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Reservation, error) {
	return f.blocking, nil
}

type fakeCatalogRepo struct {
	staff     *domain.Staff
	tiers     map[int64]*domain.ServiceDurationTier
	offerings map[int64]*domain.StaffServiceOffering // ключ - serviceID
}

func (f *fakeCatalogRepo) GetStaff(_ context.Context, _ int64) (*domain.Staff, error) {
	if f.staff == nil {
		return nil, assert.AnError
	}
	return f.staff, nil
}

func (f *fakeCatalogRepo) GetDurationTier(_ context.Context, tierID int64) (*domain.ServiceDurationTier, error) {
	tier, ok := f.tiers[tierID]
	if !ok {
		return nil, assert.AnError
	}
	return tier, nil
}

func (f *fakeCatalogRepo) GetOffering(_ context.Context, _, serviceID int64) (*domain.StaffServiceOffering, error) {
	offering, ok := f.offerings[serviceID]
	if !ok {
		return nil, assert.AnError
	}
	return offering, nil
}

type fakePromoRepo struct {
	promo        *domain.PromoCode
	getErr       error
	incremented  []int64
	incrementErr error
}

func (f *fakePromoRepo) GetByCode(_ context.Context, _ string) (*domain.PromoCode, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.promo, nil
}

func (f *fakePromoRepo) IncrementUses(_ context.Context, id int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incremented = append(f.incremented, id)
	return nil
}

type fakeLoyaltyRepo struct {
	count   int
	created *domain.LoyaltyStamp
}

func (f *fakeLoyaltyRepo) CountByClient(_ context.Context, _ int64) (int, error) {
	return f.count, nil
}

func (f *fakeLoyaltyRepo) Create(_ context.Context, stamp *domain.LoyaltyStamp) (*domain.LoyaltyStamp, error) {
	stamp.ID = 7
	f.created = stamp
	return stamp, nil
}

// fakeTxManager выполняет fn без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	sent chan notifier.TemplateType
}

func (f *fakeNotifier) Send(_ context.Context, _ int64, templateType notifier.TemplateType, _ string, _ map[string]string) error {
	f.sent <- templateType
	return nil
}

type fakeMetrics struct {
	created   int
	conflicts int
}

func (f *fakeMetrics) IncBookingCreated()  { f.created++ }
func (f *fakeMetrics) IncBookingConflict() { f.conflicts++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	reservations *fakeReservationRepo
	catalog      *fakeCatalogRepo
	promos       *fakePromoRepo
	loyalty      *fakeLoyaltyRepo
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		reservations: &fakeReservationRepo{},
		catalog: &fakeCatalogRepo{
			staff: &domain.Staff{ID: 1, IsActive: true},
			tiers: map[int64]*domain.ServiceDurationTier{
				3: {ID: 3, ServiceID: 2, DurationMinutes: 60, BasePrice: 900, IsActive: true},
				5: {ID: 5, ServiceID: 4, DurationMinutes: 30, BasePrice: 500, IsActive: true},
			},
			offerings: map[int64]*domain.StaffServiceOffering{
				2: {StaffID: 1, ServiceID: 2, PriceModifier: 100},
				4: {StaffID: 1, ServiceID: 4, PriceModifier: 0},
			},
		},
		promos:  &fakePromoRepo{getErr: promoRepo.ErrPromoNotFound},
		loyalty: &fakeLoyaltyRepo{},
		metrics: &fakeMetrics{},
	}

	f.uc = NewUseCase(
		f.reservations,
		f.catalog,
		f.promos,
		f.loyalty,
		fakeTxManager{},
		nil,
		f.metrics,
		Config{LoyaltyEnabled: true, StampsPerReward: 10, DefaultLanguage: "ru"},
		nopLogger{},
	)
	return f
}

func validRequest() *Request {
	return &Request{
		ClientID:  10,
		StaffID:   1,
		Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("10:00"),
		Items: []RequestItem{
			{ServiceID: 2, DurationTierID: 3},
			{ServiceID: 4, DurationTierID: 5},
		},
	}
}

func TestExecute_HappyPath(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ReservationID)
	assert.Equal(t, domain.StatusPendingConfirmation, resp.Status)
	// 60 + 30 минут от 10:00
	assert.Equal(t, "11:30", resp.EndTime.String())
	// (900+100) + (500+0)
	assert.Equal(t, 1500.0, resp.TotalPrice)
	assert.Equal(t, 0.0, resp.DiscountAmount)
	assert.False(t, resp.PromoApplied)

	require.NotNil(t, f.reservations.created)
	require.Len(t, f.reservations.created.LineItems, 2)
	assert.Equal(t, 0, f.reservations.created.LineItems[0].SortOrder)
	assert.Equal(t, 1, f.reservations.created.LineItems[1].SortOrder)
	assert.Equal(t, 1000.0, f.reservations.created.LineItems[0].Price)

	assert.Equal(t, 1, f.metrics.created)
	assert.Equal(t, 0, f.metrics.conflicts)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture(t)
	f.reservations.blocking = []*domain.Reservation{{
		StartTime: types.TimeString("10:30"),
		EndTime:   types.TimeString("11:00"),
		Status:    domain.StatusConfirmed,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, f.reservations.created)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Equal(t, 0, f.metrics.created)
}

func TestExecute_AdjacentReservationIsNotConflict(t *testing.T) {
	f := newFixture(t)
	// Заканчивается ровно в 10:00 - полуоткрытые интервалы не пересекаются
	f.reservations.blocking = []*domain.Reservation{{
		StartTime: types.TimeString("09:00"),
		EndTime:   types.TimeString("10:00"),
		Status:    domain.StatusConfirmed,
	}}

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ReservationID)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.reservations.blocking = []*domain.Reservation{{
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
		Status:    domain.StatusCancelledByClient,
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_PromoApplied(t *testing.T) {
	f := newFixture(t)
	f.promos.getErr = nil
	f.promos.promo = &domain.PromoCode{
		ID:            55,
		Code:          "SAVE20",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 20,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
		IsActive:      true,
	}

	req := validRequest()
	req.PromoCode = "SAVE20"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.PromoApplied)
	assert.Equal(t, 300.0, resp.DiscountAmount) // 20% от 1500
	assert.Equal(t, []int64{55}, f.promos.incremented)
	require.NotNil(t, f.reservations.created.PromoCodeID)
	assert.Equal(t, int64(55), *f.reservations.created.PromoCodeID)
}

func TestExecute_UnknownPromoIsSilentlyIgnored(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.PromoCode = "NOPE"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.PromoApplied)
	assert.Equal(t, 0.0, resp.DiscountAmount)
	assert.Nil(t, f.reservations.created.PromoCodeID)
}

func TestExecute_ExpiredPromoIsSilentlyIgnored(t *testing.T) {
	f := newFixture(t)
	f.promos.getErr = nil
	f.promos.promo = &domain.PromoCode{
		ID:            55,
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 20,
		ValidFrom:     time.Now().Add(-48 * time.Hour),
		ValidUntil:    time.Now().Add(-24 * time.Hour),
		IsActive:      true,
	}

	req := validRequest()
	req.PromoCode = "OLD"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.PromoApplied)
	assert.Empty(t, f.promos.incremented)
}

func TestExecute_ConcurrentlyExhaustedPromo(t *testing.T) {
	f := newFixture(t)
	f.promos.getErr = nil
	f.promos.promo = &domain.PromoCode{
		ID:            55,
		DiscountType:  domain.DiscountFixed,
		DiscountValue: 200,
		ValidFrom:     time.Now().Add(-time.Hour),
		ValidUntil:    time.Now().Add(time.Hour),
		MaxUses:       ptr.Ptr(100),
		IsActive:      true,
	}
	f.promos.incrementErr = promoRepo.ErrUsesExhausted

	req := validRequest()
	req.PromoCode = "LIMITED"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.PromoApplied)
	assert.Equal(t, 0.0, resp.DiscountAmount)
	assert.Nil(t, f.reservations.created.PromoCodeID)
}

func TestExecute_LoyaltyStampSequence(t *testing.T) {
	f := newFixture(t)
	f.loyalty.count = 4

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, f.loyalty.created)
	assert.Equal(t, 5, f.loyalty.created.SequenceNumber)
	assert.False(t, f.loyalty.created.IsReward)
	assert.False(t, resp.RewardEarned)
}

func TestExecute_LoyaltyRewardOnThreshold(t *testing.T) {
	f := newFixture(t)
	f.loyalty.count = 9 // десятый штамп замыкает цикл

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, f.loyalty.created)
	assert.Equal(t, 10, f.loyalty.created.SequenceNumber)
	assert.True(t, f.loyalty.created.IsReward)
	assert.True(t, resp.RewardEarned)
}

func TestExecute_LoyaltyDisabled(t *testing.T) {
	f := newFixture(t)
	f.uc.cfg.LoyaltyEnabled = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, f.loyalty.created)
}

func TestExecute_NegativeModifierIsNotClamped(t *testing.T) {
	f := newFixture(t)
	f.catalog.offerings[2].PriceModifier = -1000 // база 900

	req := validRequest()
	req.Items = req.Items[:1]

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, -100.0, resp.TotalPrice)
	assert.Equal(t, -100.0, f.reservations.created.LineItems[0].Price)
}

func TestExecute_IntervalPastMidnight(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.StartTime = types.TimeString("23:30")

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_TierFromAnotherService(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Items = []RequestItem{{ServiceID: 2, DurationTierID: 5}} // тариф услуги 4

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidServiceDuration)
}

func TestExecute_InactiveStaff(t *testing.T) {
	f := newFixture(t)
	f.catalog.staff.IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_NoItems(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Items = nil

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NotificationSentAfterCommit(t *testing.T) {
	f := newFixture(t)
	n := &fakeNotifier{sent: make(chan notifier.TemplateType, 1)}
	f.uc.notifier = n

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	select {
	case tmpl := <-n.sent:
		assert.Equal(t, notifier.TemplateBookingCreated, tmpl)
	case <-time.After(time.Second):
		t.Fatal("notification was not sent")
	}
}
