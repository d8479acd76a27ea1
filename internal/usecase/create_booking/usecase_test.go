package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	"github.com/m04kA/SMC-LaundryService/internal/integrations/walletservice"
)

const (
	testUserID = int64(42)
	testHallID = int64(1)
)

type testEnv struct {
	uc       *UseCase
	apptRepo *mockAppointmentRepo
	wallet   *mockWalletClient
	sched    *mockScheduler
}

// setupEnv собирает use case с 3 стиральными и 2 сушильными машинами.
// Стирка: 100 за цикл 45 минут, сушка: 50 за цикл 60 минут.
func setupEnv(now time.Time) *testEnv {
	apptRepo := newMockAppointmentRepo()

	hall := &domain.Hall{
		ID:          testHallID,
		Name:        "Hall A",
		OpeningTime: "08:00",
		ClosingTime: "22:00",
		WasherPrice: 100,
		DryerPrice:  50,
	}

	sched := &mockScheduler{
		apptRepo: apptRepo,
		machines: []*domain.Machine{
			{ID: 1, HallID: testHallID, Type: domain.MachineWasher, Status: domain.MachineAvailable, DurationMins: 45},
			{ID: 2, HallID: testHallID, Type: domain.MachineWasher, Status: domain.MachineAvailable, DurationMins: 45},
			{ID: 3, HallID: testHallID, Type: domain.MachineWasher, Status: domain.MachineAvailable, DurationMins: 45},
			{ID: 10, HallID: testHallID, Type: domain.MachineDryer, Status: domain.MachineAvailable, DurationMins: 60},
			{ID: 11, HallID: testHallID, Type: domain.MachineDryer, Status: domain.MachineAvailable, DurationMins: 60},
		},
	}

	wallet := &mockWalletClient{}

	uc := NewUseCase(
		apptRepo,
		&mockHallRepo{halls: map[int64]*domain.Hall{testHallID: hall}},
		&mockPricingService{
			prices:    map[domain.MachineType]float64{domain.MachineWasher: 100, domain.MachineDryer: 50},
			durations: map[domain.MachineType]int{domain.MachineWasher: 45, domain.MachineDryer: 60},
		},
		sched,
		wallet,
		&mockTxManager{apptRepo: apptRepo},
		nopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}

	return &testEnv{uc: uc, apptRepo: apptRepo, wallet: wallet, sched: sched}
}

func washRequest(loadCount int) *Request {
	return &Request{
		UserID:      testUserID,
		HallID:      testHallID,
		ServiceType: "wash",
		Date:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "12:00",
		LoadCount:   loadCount,
	}
}

func TestUseCase_Execute_SingleLoadWash(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	resp, err := env.uc.Execute(context.Background(), washRequest(1))
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 1)
	appt := resp.Appointments[0]
	assert.Equal(t, int64(1), appt.MachineID)
	assert.Equal(t, "wash", appt.ServiceType)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), appt.AppointmentDatetime)
	assert.Equal(t, 45, appt.DurationMinutes)
	assert.Equal(t, 100.0, appt.Cost)
	assert.Equal(t, string(domain.StatusPending), appt.Status)
	assert.Equal(t, 100.0, resp.TotalCost)

	require.Len(t, env.wallet.debits, 1)
	assert.Equal(t, "appointment_1", env.wallet.debits[0].reference)
	assert.Equal(t, 100.0, env.wallet.debits[0].amount)
	assert.Equal(t, testUserID, env.wallet.debits[0].userID)
}

func TestUseCase_Execute_MultiLoadDistinctMachines(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	resp, err := env.uc.Execute(context.Background(), washRequest(3))
	require.NoError(t, err)

	require.Len(t, resp.Appointments, 3)

	// Все загрузки стартуют одновременно на разных машинах
	seen := map[int64]bool{}
	for _, appt := range resp.Appointments {
		assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), appt.AppointmentDatetime)
		assert.False(t, seen[appt.MachineID], "machine %d assigned twice", appt.MachineID)
		seen[appt.MachineID] = true
	}

	assert.Equal(t, 300.0, resp.TotalCost)
	require.Len(t, env.wallet.debits, 1)
	assert.Equal(t, 300.0, env.wallet.debits[0].amount)
	assert.Equal(t, "appointment_1", env.wallet.debits[0].reference)
}

func TestUseCase_Execute_WashDryTwoPhases(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	req := washRequest(1)
	req.ServiceType = "wash_dry"

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Одна загрузка wash_dry - две заявки: стирка и сушка сразу после неё
	require.Len(t, resp.Appointments, 2)

	wash := resp.Appointments[0]
	assert.Equal(t, "wash", wash.ServiceType)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), wash.AppointmentDatetime)
	assert.Equal(t, 45, wash.DurationMinutes)
	assert.Equal(t, 100.0, wash.Cost)

	dry := resp.Appointments[1]
	assert.Equal(t, "dry", dry.ServiceType)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 45, 0, 0, time.UTC), dry.AppointmentDatetime)
	assert.Equal(t, 60, dry.DurationMinutes)
	assert.Equal(t, 50.0, dry.Cost)

	assert.Equal(t, 150.0, resp.TotalCost)
	require.Len(t, env.wallet.debits, 1)
	assert.Equal(t, 150.0, env.wallet.debits[0].amount)
}

func TestUseCase_Execute_InsufficientFundsBeforeReservation(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	env.wallet.affordability = &walletservice.AffordabilityResult{
		CanBook:        false,
		CurrentBalance: 50,
		Shortfall:      250,
	}

	_, err := env.uc.Execute(context.Background(), washRequest(3))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Машины не резервировались, списаний не было
	assert.Empty(t, env.apptRepo.appointments)
	assert.Empty(t, env.wallet.debits)
}

func TestUseCase_Execute_NotEnoughMachines(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	// 4 загрузки на 3 стиральные машины
	_, err := env.uc.Execute(context.Background(), washRequest(4))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Транзакция откатилась - частично созданных заявок нет
	assert.Empty(t, env.apptRepo.appointments)
	assert.Empty(t, env.wallet.debits)
}

func TestUseCase_Execute_DebitRejectedCompensates(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	env.wallet.debitErr = walletservice.ErrInsufficientFunds

	_, err := env.uc.Execute(context.Background(), washRequest(2))
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Созданные заявки отменены компенсирующей отменой
	require.Len(t, env.apptRepo.appointments, 2)
	assert.ElementsMatch(t, []int64{1, 2}, env.apptRepo.cancelled)
	for _, appt := range env.apptRepo.appointments {
		assert.Equal(t, domain.StatusCancelled, appt.Status)
	}
}

func TestUseCase_Execute_WalletDownOnDebitCompensates(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	env.wallet.debitErr = walletservice.ErrInvalidResponse

	_, err := env.uc.Execute(context.Background(), washRequest(1))
	assert.ErrorIs(t, err, ErrWalletUnavailable)
	assert.ElementsMatch(t, []int64{1}, env.apptRepo.cancelled)
}

func TestUseCase_Execute_WalletDownOnValidation(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	env.wallet.validateErr = errors.New("connection refused")

	_, err := env.uc.Execute(context.Background(), washRequest(1))
	assert.ErrorIs(t, err, ErrWalletUnavailable)
	assert.Empty(t, env.apptRepo.appointments)
}

func TestUseCase_Execute_WalletUserNotFound(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))
	env.wallet.validateErr = walletservice.ErrUserNotFound

	_, err := env.uc.Execute(context.Background(), washRequest(1))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUseCase_Execute_HallNotFound(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	req := washRequest(1)
	req.HallID = 99

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrHallNotFound)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC))

	_, err := env.uc.Execute(context.Background(), washRequest(1))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_TodayStartMustBeInFuture(t *testing.T) {
	// Сегодня 12:00 - слот "12:00" уже не бронируется
	env := setupEnv(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	_, err := env.uc.Execute(context.Background(), washRequest(1))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// А строго будущий слот того же дня - бронируется
	req := washRequest(1)
	req.StartTime = "12:15"
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_DoesNotFitOperatingHours(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	// wash_dry занимает 105 минут: старт 20:30 выходит за закрытие 22:00
	req := washRequest(1)
	req.ServiceType = "wash_dry"
	req.StartTime = "20:30"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Конец ровно в закрытие допустим: 20:15 + 105 минут = 22:00
	req.StartTime = "20:15"
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestUseCase_Execute_LoadCountBounds(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	_, err := env.uc.Execute(context.Background(), washRequest(0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.uc.Execute(context.Background(), washRequest(domain.MaxLoadCount+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_InvalidServiceType(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	req := washRequest(1)
	req.ServiceType = "iron"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_MultiLoadWashDrySequencing(t *testing.T) {
	env := setupEnv(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC))

	req := washRequest(2)
	req.ServiceType = "wash_dry"

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 4)

	// Обе стирки в 12:00 на разных машинах, обе сушки в 12:45 на разных машинах
	washMachines := map[int64]bool{}
	dryMachines := map[int64]bool{}
	for _, appt := range resp.Appointments {
		switch appt.ServiceType {
		case "wash":
			assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), appt.AppointmentDatetime)
			assert.False(t, washMachines[appt.MachineID])
			washMachines[appt.MachineID] = true
		case "dry":
			assert.Equal(t, time.Date(2026, 3, 10, 12, 45, 0, 0, time.UTC), appt.AppointmentDatetime)
			assert.False(t, dryMachines[appt.MachineID])
			dryMachines[appt.MachineID] = true
		}
	}
	assert.Len(t, washMachines, 2)
	assert.Len(t, dryMachines, 2)

	assert.Equal(t, 300.0, resp.TotalCost)
}
