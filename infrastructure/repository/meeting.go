package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/crm-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-intelligence-api/internal/domain"
)

const meetingsTable = "meetings m"

type MeetingRepository interface {
	ListMeetings() ([]*domain.Meeting, error)
}

type meetingRepository struct {
	conn *postgres.Connection
}

func NewMeetingRepository(conn *postgres.Connection) MeetingRepository {
	return &meetingRepository{
		conn: conn,
	}
}

func (r *meetingRepository) ListMeetings() ([]*domain.Meeting, error) {
	meetingsSQL, meetingsArgs, err := squirrel.
		Select("m.id, m.customer_id, m.meeting_date, m.next_action_date, m.status, m.deleted").
		From(meetingsTable).
		OrderBy("m.meeting_date ASC NULLS FIRST, m.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(meetingsSQL, meetingsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	meetings := make([]*domain.Meeting, 0)

	for rows.Next() {
		meeting := &domain.Meeting{}
		var meetingDate, nextActionDate sql.NullTime

		if err := rows.Scan(
			&meeting.ID,
			&meeting.CustomerID,
			&meetingDate,
			&nextActionDate,
			&meeting.Status,
			&meeting.Deleted,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar a reunião: %w", err)
		}

		meeting.MeetingDate = meetingDate.Time
		if nextActionDate.Valid {
			next := nextActionDate.Time
			meeting.NextActionDate = &next
		}

		meetings = append(meetings, meeting)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return meetings, nil
}
