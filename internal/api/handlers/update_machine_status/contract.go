package update_machine_status

import (
	"context"

	"github.com/m04kA/SMC-LaundryService/internal/service/machines/models"
)

type MachineService interface {
	UpdateStatus(ctx context.Context, machineID int64, req *models.UpdateMachineStatusRequest) (*models.MachineResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
