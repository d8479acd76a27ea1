package models

import "github.com/m04kA/SMC-LaundryService/internal/domain"

// Request модели

// UpdateMachineStatusRequest запрос на обновление статуса машины
type UpdateMachineStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// MachineResponse ответ с данными машины
type MachineResponse struct {
	ID              int64  `json:"id"`
	HallID          int64  `json:"hallId"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	DurationMinutes int    `json:"durationMinutes"`
}

// MachineListResponse ответ со списком машин прачечной
type MachineListResponse struct {
	HallID   int64             `json:"hallId"`
	Machines []MachineResponse `json:"machines"`
}

// Методы конвертации

// FromDomainMachine конвертирует domain модель в DTO
func FromDomainMachine(m *domain.Machine) *MachineResponse {
	if m == nil {
		return nil
	}

	return &MachineResponse{
		ID:              m.ID,
		HallID:          m.HallID,
		Type:            string(m.Type),
		Status:          string(m.Status),
		DurationMinutes: m.DurationMins,
	}
}

// FromDomainMachineList конвертирует список domain моделей в DTO
func FromDomainMachineList(hallID int64, machines []*domain.Machine) *MachineListResponse {
	resp := &MachineListResponse{
		HallID:   hallID,
		Machines: make([]MachineResponse, 0, len(machines)),
	}

	for _, m := range machines {
		if machineResp := FromDomainMachine(m); machineResp != nil {
			resp.Machines = append(resp.Machines, *machineResp)
		}
	}

	return resp
}
