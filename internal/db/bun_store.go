// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/gridpulse/gridpulse/internal/model"
)

// bunStore implements Store on top of a *bun.DB. The dialect-specific
// store types embed it; everything here is written in dialect-portable
// Bun queries.
type bunStore struct {
	bun *bun.DB
}

// ExecRaw executes a raw SQL statement through Bun.
func ExecRaw(ctx context.Context, bdb *bun.DB, query string, args ...interface{}) (sql.Result, error) {
	return bdb.NewRaw(query, args...).Exec(ctx)
}

// GetDeviceByDeviceID returns the device with the given external ID, or
// nil when no such device exists.
func (s *bunStore) GetDeviceByDeviceID(deviceID string) (*model.Device, error) {
	ctx := context.Background()
	var m DeviceModel
	err := s.bun.NewSelect().Model(&m).Where("device_id = ?", deviceID).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	d := deviceModelToModel(m)
	return &d, nil
}

// CreateDevice inserts a device and returns its assigned ID.
func (s *bunStore) CreateDevice(d model.Device) (int, error) {
	ctx := context.Background()
	m := &DeviceModel{
		DeviceID:   d.DeviceID,
		DeviceName: d.DeviceName,
		DeviceType: d.DeviceType,
		Location:   d.Location,
		IsActive:   true,
		CreatedAt:  time.Now(),
	}
	if !d.LastSeen.IsZero() {
		m.LastSeen = sql.NullTime{Time: d.LastSeen, Valid: true}
	}
	if _, err := s.bun.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return m.ID, nil
}

// GetAllDevices returns all devices ordered by their external ID.
func (s *bunStore) GetAllDevices() ([]model.Device, error) {
	ctx := context.Background()
	var ms []DeviceModel
	if err := s.bun.NewSelect().Model(&ms).Order("device_id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	devices := make([]model.Device, 0, len(ms))
	for _, m := range ms {
		devices = append(devices, deviceModelToModel(m))
	}
	return devices, nil
}

func (s *bunStore) CountDevices() (int, error) {
	return s.bun.NewSelect().Model((*DeviceModel)(nil)).Count(context.Background())
}

// GetClientByName returns the client with the given name, or nil when
// no such client exists.
func (s *bunStore) GetClientByName(name string) (*model.Client, error) {
	ctx := context.Background()
	var m ClientModel
	err := s.bun.NewSelect().Model(&m).Where("name = ?", name).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c := clientModelToModel(m)
	return &c, nil
}

// CreateClient inserts a client and returns its assigned ID.
func (s *bunStore) CreateClient(c model.Client) (int, error) {
	ctx := context.Background()
	m := &ClientModel{
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		WhatsappNumber:  c.WhatsappNumber,
		Address:         c.Address,
		IsActive:        true,
		ReceiveAlerts:   c.ReceiveAlerts,
		ReceiveReports:  c.ReceiveReports,
		ReportFrequency: c.ReportFrequency,
		CreatedAt:       time.Now(),
	}
	if m.ReportFrequency == "" {
		m.ReportFrequency = "WEEKLY"
	}
	if _, err := s.bun.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return m.ID, nil
}

// AssignDeviceToClient creates an association in client_devices.
func (s *bunStore) AssignDeviceToClient(clientID, deviceID int) error {
	// Raw insert since client_devices has no PK model in the codebase.
	_, err := ExecRaw(context.Background(), s.bun, "INSERT INTO client_devices(client_id, device_id) VALUES(?, ?)", clientID, deviceID)
	return MapDBError(err)
}

func (s *bunStore) CountClients() (int, error) {
	return s.bun.NewSelect().Model((*ClientModel)(nil)).Count(context.Background())
}

// CountDeviceAssignments counts rows in the client_devices join table.
func (s *bunStore) CountDeviceAssignments() (int, error) {
	var n int
	err := s.bun.NewRaw("SELECT COUNT(*) FROM client_devices").Scan(context.Background(), &n)
	return n, err
}

// GetTariffByName returns the tariff with the given name, or nil when
// no such tariff exists.
func (s *bunStore) GetTariffByName(name string) (*model.EnergyTariff, error) {
	ctx := context.Background()
	var m EnergyTariffModel
	err := s.bun.NewSelect().Model(&m).Where("name = ?", name).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	t := tariffModelToModel(m)
	return &t, nil
}

// CreateTariff inserts a tariff and returns its assigned ID.
func (s *bunStore) CreateTariff(t model.EnergyTariff) (int, error) {
	ctx := context.Background()
	m := &EnergyTariffModel{
		Name:       t.Name,
		RatePerKwh: t.RatePerKwh,
		Currency:   t.Currency,
		StartTime:  sql.NullString{String: t.StartTime, Valid: t.StartTime != ""},
		EndTime:    sql.NullString{String: t.EndTime, Valid: t.EndTime != ""},
		IsActive:   true,
	}
	if m.Currency == "" {
		m.Currency = "NGN"
	}
	if _, err := s.bun.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return m.ID, nil
}

func (s *bunStore) CountTariffs() (int, error) {
	return s.bun.NewSelect().Model((*EnergyTariffModel)(nil)).Count(context.Background())
}

// InsertPowerReadings bulk-inserts power readings.
func (s *bunStore) InsertPowerReadings(readings []model.PowerReading) error {
	if len(readings) == 0 {
		return nil
	}
	ms := make([]PowerReadingModel, 0, len(readings))
	for _, r := range readings {
		ms = append(ms, powerReadingToBun(r))
	}
	_, err := s.bun.NewInsert().Model(&ms).Exec(context.Background())
	return err
}

// InsertBatteryReadings bulk-inserts battery readings.
func (s *bunStore) InsertBatteryReadings(readings []model.BatteryReading) error {
	if len(readings) == 0 {
		return nil
	}
	ms := make([]BatteryReadingModel, 0, len(readings))
	for _, r := range readings {
		ms = append(ms, batteryReadingToBun(r))
	}
	_, err := s.bun.NewInsert().Model(&ms).Exec(context.Background())
	return err
}

// InsertDailyConsumption inserts one daily rollup row.
func (s *bunStore) InsertDailyConsumption(c model.DailyConsumption) error {
	m := &DailyConsumptionModel{
		DeviceID:         c.DeviceID,
		Date:             c.Date,
		TotalConsumption: c.TotalConsumption,
		AvgPower:         c.AvgPower,
		PeakPower:        c.PeakPower,
		MinPower:         c.MinPower,
		TotalCost:        c.TotalCost,
	}
	_, err := s.bun.NewInsert().Model(m).Exec(context.Background())
	return MapDBError(err)
}

// LatestPowerReading returns the most recent reading for a device, or
// nil when the device has none.
func (s *bunStore) LatestPowerReading(deviceID string) (*model.PowerReading, error) {
	ctx := context.Background()
	var m PowerReadingModel
	err := s.bun.NewSelect().Model(&m).
		Where("device_id = ?", deviceID).
		Order("timestamp DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	r := powerReadingModelToModel(m)
	return &r, nil
}

func (s *bunStore) CountPowerReadings() (int, error) {
	return s.bun.NewSelect().Model((*PowerReadingModel)(nil)).Count(context.Background())
}

func (s *bunStore) CountBatteryReadings() (int, error) {
	return s.bun.NewSelect().Model((*BatteryReadingModel)(nil)).Count(context.Background())
}

func (s *bunStore) CountDailyConsumption() (int, error) {
	return s.bun.NewSelect().Model((*DailyConsumptionModel)(nil)).Count(context.Background())
}

// InsertAlert inserts an alert row.
func (s *bunStore) InsertAlert(a model.Alert) error {
	m := &AlertModel{
		DeviceID:  a.DeviceID,
		AlertType: a.AlertType,
		Message:   a.Message,
		Value:     a.Value,
		Severity:  a.Severity,
		Status:    a.Status,
		Timestamp: a.Timestamp,
	}
	if !a.ResolvedAt.IsZero() {
		m.ResolvedAt = sql.NullTime{Time: a.ResolvedAt, Valid: true}
	}
	_, err := s.bun.NewInsert().Model(m).Exec(context.Background())
	return err
}

// ListAlerts returns the most recent alerts, newest first.
func (s *bunStore) ListAlerts(limit int) ([]model.Alert, error) {
	ctx := context.Background()
	var ms []AlertModel
	q := s.bun.NewSelect().Model(&ms).Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	alerts := make([]model.Alert, 0, len(ms))
	for _, m := range ms {
		alerts = append(alerts, alertModelToModel(m))
	}
	return alerts, nil
}

func (s *bunStore) CountAlerts() (int, error) {
	return s.bun.NewSelect().Model((*AlertModel)(nil)).Count(context.Background())
}

// CountAlertsBySeverityStatus counts alerts matching the given severity
// and status; an empty string matches everything for that field.
func (s *bunStore) CountAlertsBySeverityStatus(severity, status string) (int, error) {
	q := s.bun.NewSelect().Model((*AlertModel)(nil))
	if severity != "" {
		q = q.Where("severity = ?", severity)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return q.Count(context.Background())
}

// InsertWhatsAppMessage inserts one outbound notification row.
func (s *bunStore) InsertWhatsAppMessage(w model.WhatsAppMessage) error {
	m := &WhatsAppMessageModel{
		Recipient:   w.Recipient,
		Message:     w.Message,
		MessageType: w.MessageType,
		Status:      w.Status,
		CreatedAt:   time.Now(),
	}
	if w.AlertID > 0 {
		m.AlertID = sql.NullInt64{Int64: int64(w.AlertID), Valid: true}
	}
	if w.ClientID > 0 {
		m.ClientID = sql.NullInt64{Int64: int64(w.ClientID), Valid: true}
	}
	if !w.SentAt.IsZero() {
		m.SentAt = sql.NullTime{Time: w.SentAt, Valid: true}
	}
	_, err := s.bun.NewInsert().Model(m).Exec(context.Background())
	return err
}

// ListWhatsAppMessages returns the most recently created messages,
// newest first.
func (s *bunStore) ListWhatsAppMessages(limit int) ([]model.WhatsAppMessage, error) {
	ctx := context.Background()
	var ms []WhatsAppMessageModel
	q := s.bun.NewSelect().Model(&ms).Order("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	messages := make([]model.WhatsAppMessage, 0, len(ms))
	for _, m := range ms {
		messages = append(messages, whatsappModelToModel(m))
	}
	return messages, nil
}

func (s *bunStore) CountWhatsAppMessages() (int, error) {
	return s.bun.NewSelect().Model((*WhatsAppMessageModel)(nil)).Count(context.Background())
}

// GetAdminByUsername returns the admin user with the given username, or
// nil when no such user exists.
func (s *bunStore) GetAdminByUsername(username string) (*model.AdminUser, error) {
	ctx := context.Background()
	var m AdminUserModel
	err := s.bun.NewSelect().Model(&m).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u := adminModelToModel(m)
	return &u, nil
}

// CreateAdminUser inserts an admin user and returns its assigned ID.
// Inserting an existing username fails with ErrDuplicate.
func (s *bunStore) CreateAdminUser(u model.AdminUser) (int, error) {
	ctx := context.Background()
	m := &AdminUserModel{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsSuperuser:  u.IsSuperuser,
		CreatedAt:    time.Now(),
	}
	if _, err := s.bun.NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return m.ID, nil
}

// ClearSampleData deletes all seedable data. Admin users and clients
// survive a clear; only measurement data, devices and tariffs go.
func (s *bunStore) ClearSampleData() error {
	ctx := context.Background()
	tables := []string{
		"whatsapp_messages",
		"power_readings",
		"battery_readings",
		"daily_consumption",
		"alerts",
		"client_devices",
		"devices",
		"energy_tariffs",
	}
	for _, table := range tables {
		if _, err := ExecRaw(ctx, s.bun, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
