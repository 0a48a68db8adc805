// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"time"

	"github.com/uptrace/bun"

	"github.com/gridpulse/gridpulse/internal/model"
)

// DeviceModel maps the `devices` table for Bun queries.
type DeviceModel struct {
	bun.BaseModel `bun:"table:devices"`
	ID            int          `bun:"id,pk,autoincrement"`
	DeviceID      string       `bun:"device_id"`
	DeviceName    string       `bun:"device_name"`
	DeviceType    string       `bun:"device_type"`
	Location      string       `bun:"location"`
	IsActive      bool         `bun:"is_active"`
	LastSeen      sql.NullTime `bun:"last_seen"`
	CreatedAt     time.Time    `bun:"created_at"`
}

func deviceModelToModel(m DeviceModel) model.Device {
	d := model.Device{
		ID:         m.ID,
		DeviceID:   m.DeviceID,
		DeviceName: m.DeviceName,
		DeviceType: m.DeviceType,
		Location:   m.Location,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
	if m.LastSeen.Valid {
		d.LastSeen = m.LastSeen.Time
	}
	return d
}

// ClientModel maps the `clients` table for Bun queries.
type ClientModel struct {
	bun.BaseModel   `bun:"table:clients"`
	ID              int       `bun:"id,pk,autoincrement"`
	Name            string    `bun:"name"`
	Email           string    `bun:"email"`
	Phone           string    `bun:"phone"`
	WhatsappNumber  string    `bun:"whatsapp_number"`
	Address         string    `bun:"address"`
	IsActive        bool      `bun:"is_active"`
	ReceiveAlerts   bool      `bun:"receive_alerts"`
	ReceiveReports  bool      `bun:"receive_reports"`
	ReportFrequency string    `bun:"report_frequency"`
	CreatedAt       time.Time `bun:"created_at"`
}

func clientModelToModel(m ClientModel) model.Client {
	return model.Client{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		WhatsappNumber:  m.WhatsappNumber,
		Address:         m.Address,
		IsActive:        m.IsActive,
		ReceiveAlerts:   m.ReceiveAlerts,
		ReceiveReports:  m.ReceiveReports,
		ReportFrequency: m.ReportFrequency,
		CreatedAt:       m.CreatedAt,
	}
}

// PowerReadingModel maps the `power_readings` table for Bun queries.
type PowerReadingModel struct {
	bun.BaseModel  `bun:"table:power_readings"`
	ID             int       `bun:"id,pk,autoincrement"`
	DeviceID       string    `bun:"device_id"`
	Voltage        float64   `bun:"voltage"`
	Current        float64   `bun:"current"`
	Power          float64   `bun:"power"`
	Frequency      float64   `bun:"frequency"`
	PowerFactor    float64   `bun:"power_factor"`
	BatteryVoltage float64   `bun:"battery_voltage"`
	BatterySOC     float64   `bun:"battery_soc"`
	Timestamp      time.Time `bun:"timestamp"`
}

func powerReadingToBun(r model.PowerReading) PowerReadingModel {
	return PowerReadingModel{
		DeviceID:       r.DeviceID,
		Voltage:        r.Voltage,
		Current:        r.Current,
		Power:          r.Power,
		Frequency:      r.Frequency,
		PowerFactor:    r.PowerFactor,
		BatteryVoltage: r.BatteryVoltage,
		BatterySOC:     r.BatterySOC,
		Timestamp:      r.Timestamp,
	}
}

func powerReadingModelToModel(m PowerReadingModel) model.PowerReading {
	return model.PowerReading{
		ID:             m.ID,
		DeviceID:       m.DeviceID,
		Voltage:        m.Voltage,
		Current:        m.Current,
		Power:          m.Power,
		Frequency:      m.Frequency,
		PowerFactor:    m.PowerFactor,
		BatteryVoltage: m.BatteryVoltage,
		BatterySOC:     m.BatterySOC,
		Timestamp:      m.Timestamp,
	}
}

// BatteryReadingModel maps the `battery_readings` table for Bun queries.
type BatteryReadingModel struct {
	bun.BaseModel `bun:"table:battery_readings"`
	ID            int       `bun:"id,pk,autoincrement"`
	DeviceID      string    `bun:"device_id"`
	Voltage       float64   `bun:"voltage"`
	SOC           float64   `bun:"soc"`
	IsCharging    bool      `bun:"is_charging"`
	Temperature   float64   `bun:"temperature"`
	Timestamp     time.Time `bun:"timestamp"`
}

func batteryReadingToBun(r model.BatteryReading) BatteryReadingModel {
	return BatteryReadingModel{
		DeviceID:    r.DeviceID,
		Voltage:     r.Voltage,
		SOC:         r.SOC,
		IsCharging:  r.IsCharging,
		Temperature: r.Temperature,
		Timestamp:   r.Timestamp,
	}
}

// DailyConsumptionModel maps the `daily_consumption` table for Bun queries.
type DailyConsumptionModel struct {
	bun.BaseModel    `bun:"table:daily_consumption"`
	ID               int       `bun:"id,pk,autoincrement"`
	DeviceID         string    `bun:"device_id"`
	Date             time.Time `bun:"date"`
	TotalConsumption float64   `bun:"total_consumption"`
	AvgPower         float64   `bun:"avg_power"`
	PeakPower        float64   `bun:"peak_power"`
	MinPower         float64   `bun:"min_power"`
	TotalCost        float64   `bun:"total_cost"`
}

// AlertModel maps the `alerts` table for Bun queries.
type AlertModel struct {
	bun.BaseModel `bun:"table:alerts"`
	ID            int          `bun:"id,pk,autoincrement"`
	DeviceID      string       `bun:"device_id"`
	AlertType     string       `bun:"alert_type"`
	Message       string       `bun:"message"`
	Value         float64      `bun:"value"`
	Severity      string       `bun:"severity"`
	Status        string       `bun:"status"`
	Timestamp     time.Time    `bun:"timestamp"`
	ResolvedAt    sql.NullTime `bun:"resolved_at"`
}

func alertModelToModel(m AlertModel) model.Alert {
	a := model.Alert{
		ID:        m.ID,
		DeviceID:  m.DeviceID,
		AlertType: m.AlertType,
		Message:   m.Message,
		Value:     m.Value,
		Severity:  m.Severity,
		Status:    m.Status,
		Timestamp: m.Timestamp,
	}
	if m.ResolvedAt.Valid {
		a.ResolvedAt = m.ResolvedAt.Time
	}
	return a
}

// WhatsAppMessageModel maps the `whatsapp_messages` table for Bun queries.
type WhatsAppMessageModel struct {
	bun.BaseModel `bun:"table:whatsapp_messages"`
	ID            int           `bun:"id,pk,autoincrement"`
	Recipient     string        `bun:"recipient"`
	Message       string        `bun:"message"`
	MessageType   string        `bun:"message_type"`
	Status        string        `bun:"status"`
	AlertID       sql.NullInt64 `bun:"alert_id"`
	ClientID      sql.NullInt64 `bun:"client_id"`
	CreatedAt     time.Time     `bun:"created_at"`
	SentAt        sql.NullTime  `bun:"sent_at"`
}

func whatsappModelToModel(m WhatsAppMessageModel) model.WhatsAppMessage {
	w := model.WhatsAppMessage{
		ID:          m.ID,
		Recipient:   m.Recipient,
		Message:     m.Message,
		MessageType: m.MessageType,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
	if m.AlertID.Valid {
		w.AlertID = int(m.AlertID.Int64)
	}
	if m.ClientID.Valid {
		w.ClientID = int(m.ClientID.Int64)
	}
	if m.SentAt.Valid {
		w.SentAt = m.SentAt.Time
	}
	return w
}

// EnergyTariffModel maps the `energy_tariffs` table for Bun queries.
type EnergyTariffModel struct {
	bun.BaseModel `bun:"table:energy_tariffs"`
	ID            int            `bun:"id,pk,autoincrement"`
	Name          string         `bun:"name"`
	RatePerKwh    float64        `bun:"rate_per_kwh"`
	Currency      string         `bun:"currency"`
	StartTime     sql.NullString `bun:"start_time"`
	EndTime       sql.NullString `bun:"end_time"`
	IsActive      bool           `bun:"is_active"`
}

func tariffModelToModel(m EnergyTariffModel) model.EnergyTariff {
	t := model.EnergyTariff{
		ID:         m.ID,
		Name:       m.Name,
		RatePerKwh: m.RatePerKwh,
		Currency:   m.Currency,
		IsActive:   m.IsActive,
	}
	if m.StartTime.Valid {
		t.StartTime = m.StartTime.String
	}
	if m.EndTime.Valid {
		t.EndTime = m.EndTime.String
	}
	return t
}

// AdminUserModel maps the `admin_users` table for Bun queries.
type AdminUserModel struct {
	bun.BaseModel `bun:"table:admin_users"`
	ID            int       `bun:"id,pk,autoincrement"`
	Username      string    `bun:"username"`
	Email         string    `bun:"email"`
	PasswordHash  string    `bun:"password_hash"`
	IsSuperuser   bool      `bun:"is_superuser"`
	CreatedAt     time.Time `bun:"created_at"`
}

func adminModelToModel(m AdminUserModel) model.AdminUser {
	return model.AdminUser{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsSuperuser:  m.IsSuperuser,
		CreatedAt:    m.CreatedAt,
	}
}
