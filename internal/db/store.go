// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/gridpulse/gridpulse/internal/model"
)

// Store defines the interface for all database operations used by the
// provisioning tool. This allows multiple database backends to be
// implemented.
type Store interface {
	// Device methods
	GetDeviceByDeviceID(deviceID string) (*model.Device, error)
	CreateDevice(d model.Device) (int, error)
	GetAllDevices() ([]model.Device, error)
	CountDevices() (int, error)

	// Client methods
	GetClientByName(name string) (*model.Client, error)
	CreateClient(c model.Client) (int, error)
	AssignDeviceToClient(clientID, deviceID int) error
	CountClients() (int, error)
	CountDeviceAssignments() (int, error)

	// Tariff methods
	GetTariffByName(name string) (*model.EnergyTariff, error)
	CreateTariff(t model.EnergyTariff) (int, error)
	CountTariffs() (int, error)

	// Reading methods
	InsertPowerReadings(readings []model.PowerReading) error
	InsertBatteryReadings(readings []model.BatteryReading) error
	InsertDailyConsumption(c model.DailyConsumption) error
	LatestPowerReading(deviceID string) (*model.PowerReading, error)
	CountPowerReadings() (int, error)
	CountBatteryReadings() (int, error)
	CountDailyConsumption() (int, error)

	// Alert methods
	InsertAlert(a model.Alert) error
	ListAlerts(limit int) ([]model.Alert, error)
	CountAlerts() (int, error)
	CountAlertsBySeverityStatus(severity, status string) (int, error)

	// WhatsApp notification methods
	InsertWhatsAppMessage(m model.WhatsAppMessage) error
	ListWhatsAppMessages(limit int) ([]model.WhatsAppMessage, error)
	CountWhatsAppMessages() (int, error)

	// Admin user methods
	GetAdminByUsername(username string) (*model.AdminUser, error)
	CreateAdminUser(u model.AdminUser) (int, error)

	// ClearSampleData deletes all seedable data (readings, rollups,
	// alerts, devices, tariffs) ahead of a fresh seeding run.
	ClearSampleData() error
}
