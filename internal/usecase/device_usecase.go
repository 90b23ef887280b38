package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/radyab-gps/tracking-service/internal/domain"
	devicedto "github.com/radyab-gps/tracking-service/internal/usecase/dto/device"
	"golang.org/x/crypto/bcrypt"
)

type DeviceUsecase interface {
	CreateDevice(input *devicedto.CreateDeviceInput) (*domain.Device, error)
	GetVisibleDevices(userID string) ([]*devicedto.DeviceSummary, error)
	GiveAccess(input *devicedto.GiveAccessInput) error
	RevokeAccess(input *devicedto.RevokeAccessInput) error
	// CheckDevicesConnection runs one connectivity sweep over all devices.
	CheckDevicesConnection() (*devicedto.SweepReport, error)
	// WithTx returns a usecase view whose device writes run inside the given
	// transaction. Used by provisioning flows.
	WithTx(tx domain.Tx) DeviceUsecase
}

type DefaultDeviceUsecase struct {
	deviceRepo domain.DeviceRepository
	accessRepo domain.DeviceAccessRepository
	userRepo   domain.UserRepository

	timeoutWindow time.Duration
	now           func() time.Time
}

func NewDefaultDeviceUsecase(
	deviceRepo domain.DeviceRepository,
	accessRepo domain.DeviceAccessRepository,
	userRepo domain.UserRepository,
	timeoutWindow time.Duration,
) *DefaultDeviceUsecase {
	return &DefaultDeviceUsecase{
		deviceRepo:    deviceRepo,
		accessRepo:    accessRepo,
		userRepo:      userRepo,
		timeoutWindow: timeoutWindow,
		now:           time.Now,
	}
}

func (uc *DefaultDeviceUsecase) WithTx(tx domain.Tx) DeviceUsecase {
	scoped := *uc
	scoped.deviceRepo = uc.deviceRepo.WithTx(tx)
	return &scoped
}

func (uc *DefaultDeviceUsecase) CreateDevice(input *devicedto.CreateDeviceInput) (*domain.Device, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	device := &domain.Device{
		DeviceID:     idGenerator(),
		DeviceName:   input.DeviceName,
		Model:        input.Model,
		UserID:       input.UserID,
		ServiceID:    input.ServiceID,
		Status:       input.Status,
		Connected:    true,
		LastReceived: &now,
	}
	if err := uc.deviceRepo.CreateDevice(device); err != nil {
		return nil, err
	}
	return device, nil
}

func (uc *DefaultDeviceUsecase) GetVisibleDevices(userID string) ([]*devicedto.DeviceSummary, error) {
	if _, err := uc.userRepo.GetUserByID(userID); err != nil {
		return nil, err
	}

	devices, err := uc.accessRepo.GetVisibleDevices(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*devicedto.DeviceSummary, len(devices))
	for i, device := range devices {
		summaries[i] = &devicedto.DeviceSummary{
			DeviceID:   device.DeviceID,
			DeviceName: device.DeviceName,
			Status:     device.Status,
		}
	}

	return summaries, nil
}

func (uc *DefaultDeviceUsecase) GiveAccess(input *devicedto.GiveAccessInput) error {
	owner, err := uc.userRepo.GetUserByID(input.OwnerID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(input.Password)); err != nil {
		return domain.ErrUnauthorized
	}

	device, err := uc.deviceRepo.GetDeviceByID(input.DeviceID)
	if err != nil {
		return err
	}
	if device.UserID != input.OwnerID {
		return domain.ErrAccessDenied
	}

	target, err := uc.userRepo.GetUserByEmail(input.TargetEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrRecipientNotFound
		}
		return err
	}
	if target.ID == input.OwnerID {
		return fmt.Errorf("%w: cannot grant access to yourself", domain.ErrValidation)
	}

	return uc.accessRepo.GrantAccess(&domain.DeviceAccess{
		DeviceID:     device.DeviceID,
		GranteeID:    target.ID,
		GranteeEmail: target.Email,
		ServiceID:    device.ServiceID,
		CreatedAt:    uc.now(),
	})
}

func (uc *DefaultDeviceUsecase) RevokeAccess(input *devicedto.RevokeAccessInput) error {
	device, err := uc.deviceRepo.GetDeviceByID(input.DeviceID)
	if err != nil {
		return err
	}
	if device.UserID != input.OwnerID {
		return domain.ErrAccessDenied
	}

	target, err := uc.userRepo.GetUserByEmail(input.TargetEmail)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrRecipientNotFound
		}
		return err
	}

	return uc.accessRepo.RevokeAccess(device.DeviceID, target.ID)
}

// CheckDevicesConnection flips the connected flag for devices whose last
// sample fell outside the freshness window. Writes happen only on a
// difference, so a sweep over a steady-state fleet touches nothing and
// running it twice back to back is a no-op. One device's write failure is
// logged and counted without aborting the rest of the sweep.
func (uc *DefaultDeviceUsecase) CheckDevicesConnection() (*devicedto.SweepReport, error) {
	threshold := uc.now().Add(-uc.timeoutWindow)

	states, err := uc.deviceRepo.GetConnectionStates()
	if err != nil {
		return nil, fmt.Errorf("reading device states: %w", err)
	}

	report := &devicedto.SweepReport{Checked: len(states)}
	for _, state := range states {
		isConnected := state.LastReceived != nil && !state.LastReceived.Before(threshold)
		if isConnected == state.Connected {
			continue
		}

		if err := uc.deviceRepo.UpdateConnectionStatus(state.DeviceID, isConnected); err != nil {
			report.PerDeviceErrors++
			slog.Error("failed to update device connection status",
				"device_id", state.DeviceID, "connected", isConnected, "error", err)
			continue
		}
		if isConnected {
			report.FlippedOnline++
		} else {
			report.FlippedOffline++
		}
	}

	return report, nil
}
