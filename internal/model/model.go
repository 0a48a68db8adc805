// Copyright (c) 2026 GridPulse Team
// GridPulse - power monitoring system
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the core domain entities provisioned by the
// GridPulse setup tool: monitored devices, their readings, energy
// tariffs and administrative users.
package model

import (
	"fmt"
	"time"
)

// Device represents a monitored power source (e.g. an inverter).
type Device struct {
	ID         int
	DeviceID   string
	DeviceName string
	DeviceType string
	Location   string
	IsActive   bool
	LastSeen   time.Time
	CreatedAt  time.Time
}

// String returns the "name (device_id)" representation.
func (d Device) String() string {
	return fmt.Sprintf("%s (%s)", d.DeviceName, d.DeviceID)
}

// Client is a customer who owns one or more devices and receives
// alerts and reports for them.
type Client struct {
	ID              int
	Name            string
	Email           string
	Phone           string
	WhatsappNumber  string
	Address         string
	IsActive        bool
	ReceiveAlerts   bool
	ReceiveReports  bool
	ReportFrequency string // DAILY, WEEKLY or MONTHLY
	CreatedAt       time.Time
}

// PowerReading is a single electrical measurement from a device.
type PowerReading struct {
	ID             int
	DeviceID       string
	Voltage        float64
	Current        float64
	Power          float64
	Frequency      float64
	PowerFactor    float64
	BatteryVoltage float64
	BatterySOC     float64
	Timestamp      time.Time
}

// BatteryReading is a battery state snapshot for a device.
type BatteryReading struct {
	ID          int
	DeviceID    string
	Voltage     float64
	SOC         float64
	IsCharging  bool
	Temperature float64
	Timestamp   time.Time
}

// DailyConsumption is a per-device daily rollup of power readings.
type DailyConsumption struct {
	ID               int
	DeviceID         string
	Date             time.Time
	TotalConsumption float64 // kWh
	AvgPower         float64
	PeakPower        float64
	MinPower         float64
	TotalCost        float64
}

// Alert severities.
const (
	SeverityInfo     = "INFO"
	SeverityWarning  = "WARNING"
	SeverityCritical = "CRITICAL"
)

// Alert statuses.
const (
	AlertActive       = "ACTIVE"
	AlertAcknowledged = "ACKNOWLEDGED"
	AlertResolved     = "RESOLVED"
)

// Alert is a threshold violation recorded against a device.
type Alert struct {
	ID         int
	DeviceID   string
	AlertType  string
	Message    string
	Value      float64
	Severity   string
	Status     string
	Timestamp  time.Time
	ResolvedAt time.Time
}

// String returns the "SEVERITY: type - message" representation.
func (a Alert) String() string {
	return fmt.Sprintf("%s: %s - %s", a.Severity, a.AlertType, a.Message)
}

// EnergyTariff is a billing rate applied to consumption, optionally
// restricted to a time-of-day window.
type EnergyTariff struct {
	ID         int
	Name       string
	RatePerKwh float64
	Currency   string
	StartTime  string // "HH:MM", empty when the tariff is not time-bound
	EndTime    string
	IsActive   bool
}

// String returns the "name: rate currency/kWh" representation.
func (t EnergyTariff) String() string {
	return fmt.Sprintf("%s: %g %s/kWh", t.Name, t.RatePerKwh, t.Currency)
}

// WhatsApp message statuses.
const (
	MessagePending   = "PENDING"
	MessageSent      = "SENT"
	MessageFailed    = "FAILED"
	MessageDelivered = "DELIVERED"
)

// WhatsAppMessage is an outbound notification queued for a client, either
// an alert forward or a periodic report summary. AlertID and ClientID are
// zero when the message is not linked to one.
type WhatsAppMessage struct {
	ID          int
	Recipient   string
	Message     string
	MessageType string // "alert" or "report"
	Status      string
	AlertID     int
	ClientID    int
	CreatedAt   time.Time
	SentAt      time.Time
}

// String returns the "WhatsApp to recipient - STATUS" representation.
func (m WhatsAppMessage) String() string {
	return fmt.Sprintf("WhatsApp to %s - %s", m.Recipient, m.Status)
}

// AdminUser is a privileged account for the web dashboard. The password
// is stored as a bcrypt hash, never in plain text.
type AdminUser struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	IsSuperuser  bool
	CreatedAt    time.Time
}
