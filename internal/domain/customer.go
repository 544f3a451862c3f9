package domain

import (
	"time"
)

// Customer representa um cliente do cadastro, fornecido pela camada de dados
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// MeetingStatus representa o status de uma reunião com o cliente
type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusDone      MeetingStatus = "done"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Meeting representa um contato registrado com o cliente
type Meeting struct {
	ID             string        `json:"id"`
	CustomerID     string        `json:"customer_id"`
	MeetingDate    time.Time     `json:"meeting_date"`
	NextActionDate *time.Time    `json:"next_action_date,omitempty"`
	Status         MeetingStatus `json:"status"`
	Deleted        bool          `json:"deleted"`
}
