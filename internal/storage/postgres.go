package storage

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/cadence/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

// --- EventRepository ---
func (p *PostgresStorage) SaveEvent(ctx context.Context, event *internal.Event) error {
	var payload []byte
	if event.Payload != nil {
		var err error
		payload, err = json.Marshal(event.Payload)
		if err != nil {
			p.logger.Errorf("failed to marshal event payload: %v", err)
			return err
		}
	}
	_, err := p.pool.Exec(ctx, `INSERT INTO events (id, user_id, module_type, event_type, timestamp, local_day_key, action_kind, delay_minutes, reason_label, trigger_context, payload, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		event.ID, event.UserID, event.ModuleType, event.EventType, event.Timestamp, event.LocalDayKey, event.ActionKind, event.DelayMinutes, event.ReasonLabel, event.TriggerContext, payload, event.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert event: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListEvents(ctx context.Context, userID string) ([]internal.Event, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, module_type, event_type, timestamp, local_day_key, action_kind, delay_minutes, reason_label, trigger_context, payload, created_at FROM events WHERE user_id = $1 ORDER BY timestamp ASC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query events: %v", err)
		return nil, err
	}
	defer rows.Close()
	return p.scanEvents(rows)
}

func (p *PostgresStorage) ListEventsByModule(ctx context.Context, userID string, moduleType internal.ModuleType) ([]internal.Event, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, module_type, event_type, timestamp, local_day_key, action_kind, delay_minutes, reason_label, trigger_context, payload, created_at FROM events WHERE user_id = $1 AND module_type = $2 ORDER BY timestamp ASC`, userID, moduleType)
	if err != nil {
		p.logger.Errorf("failed to query events by module: %v", err)
		return nil, err
	}
	defer rows.Close()
	return p.scanEvents(rows)
}

func (p *PostgresStorage) scanEvents(rows pgx.Rows) ([]internal.Event, error) {
	var events []internal.Event
	for rows.Next() {
		var e internal.Event
		var payload []byte
		err := rows.Scan(&e.ID, &e.UserID, &e.ModuleType, &e.EventType, &e.Timestamp, &e.LocalDayKey, &e.ActionKind, &e.DelayMinutes, &e.ReasonLabel, &e.TriggerContext, &payload, &e.CreatedAt)
		if err != nil {
			p.logger.Errorf("failed to scan event: %v", err)
			return nil, err
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &e.Payload); err != nil {
				p.logger.Errorf("failed to unmarshal event payload: %v", err)
				return nil, err
			}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// --- SettingRepository ---
func (p *PostgresStorage) UpsertSetting(ctx context.Context, userID string, setting *internal.ModuleSetting) error {
	var config []byte
	if setting.Config != nil {
		var err error
		config, err = json.Marshal(setting.Config)
		if err != nil {
			p.logger.Errorf("failed to marshal setting config: %v", err)
			return err
		}
	}
	_, err := p.pool.Exec(ctx, `INSERT INTO module_settings (user_id, module_type, enabled, target_interval_min, config) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (user_id, module_type) DO UPDATE SET enabled = $3, target_interval_min = $4, config = $5`,
		userID, setting.ModuleType, setting.Enabled, setting.TargetIntervalMin, config)
	if err != nil {
		p.logger.Errorf("failed to upsert setting: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListSettings(ctx context.Context, userID string) ([]internal.ModuleSetting, error) {
	rows, err := p.pool.Query(ctx, `SELECT module_type, enabled, target_interval_min, config FROM module_settings WHERE user_id = $1 ORDER BY module_type ASC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query settings: %v", err)
		return nil, err
	}
	defer rows.Close()

	var settings []internal.ModuleSetting
	for rows.Next() {
		var s internal.ModuleSetting
		var config []byte
		if err := rows.Scan(&s.ModuleType, &s.Enabled, &s.TargetIntervalMin, &config); err != nil {
			p.logger.Errorf("failed to scan setting: %v", err)
			return nil, err
		}
		if len(config) > 0 {
			if err := json.Unmarshal(config, &s.Config); err != nil {
				p.logger.Errorf("failed to unmarshal setting config: %v", err)
				return nil, err
			}
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// --- UserRepository ---
func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name FROM users WHERE token = $1`, token)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Token, &u.Name); err != nil {
		p.logger.Errorf("user not found: %v", err)
		return nil, err
	}
	return &u, nil
}

// --- Compile-time assertions ---
var _ EventRepository = (*PostgresStorage)(nil)
var _ SettingRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
