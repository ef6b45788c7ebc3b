package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/goodbuddi/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRepository) SaveDayPlan(ctx context.Context, in model.DayPlan) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO day_plans (date_key, scratchpad, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(date_key) DO UPDATE SET scratchpad = excluded.scratchpad, updated_at = excluded.updated_at`,
			in.DateKey, in.Scratchpad, mustTime(in.UpdatedAt),
		); err != nil {
			return fmt.Errorf("upsert day plan %s: %w", in.DateKey, err)
		}
		if err := deleteEvents(ctx, tx, in.DateKey); err != nil {
			return err
		}
		for i, ev := range in.Events {
			if err := insertEvent(ctx, tx, in.DateKey, i, ev); err != nil {
				return err
			}
		}
		return nil
	})
}

func deleteEvents(ctx context.Context, q querier, dateKey string) error {
	stmts := []string{
		`DELETE FROM activity_details WHERE activity_id IN (
			SELECT a.id FROM activities a JOIN events e ON e.id = a.event_id WHERE e.date_key = ?)`,
		`DELETE FROM activities WHERE event_id IN (SELECT id FROM events WHERE date_key = ?)`,
		`DELETE FROM events WHERE date_key = ?`,
	}
	for _, stmt := range stmts {
		if _, err := q.ExecContext(ctx, stmt, dateKey); err != nil {
			return fmt.Errorf("clear events for %s: %w", dateKey, err)
		}
	}
	return nil
}

func insertEvent(ctx context.Context, q querier, dateKey string, pos int, ev model.Event) error {
	if _, err := q.ExecContext(ctx, `
		INSERT INTO events (id, date_key, position, title, time_token, duration, is_maybe, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, dateKey, pos, ev.Title, nullString(ev.Time), nullString(ev.Duration), boolInt(ev.IsMaybe), boolInt(ev.Completed),
	); err != nil {
		return fmt.Errorf("insert event %s: %w", ev.ID, err)
	}
	for i, a := range ev.Activities {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO activities (id, event_id, position, name, completed, skipped)
			VALUES (?, ?, ?, ?, ?, ?)`,
			a.ID, ev.ID, i, a.Name, boolInt(a.Completed), boolInt(a.Skipped),
		); err != nil {
			return fmt.Errorf("insert activity %s: %w", a.ID, err)
		}
		for j, d := range a.Details {
			if _, err := q.ExecContext(ctx, `
				INSERT INTO activity_details (activity_id, position, body) VALUES (?, ?, ?)`,
				a.ID, j, d,
			); err != nil {
				return fmt.Errorf("insert detail %s/%d: %w", a.ID, j, err)
			}
		}
	}
	return nil
}

func (r *SQLiteRepository) GetDayPlan(ctx context.Context, dateKey string) (model.DayPlan, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date_key, scratchpad, updated_at FROM day_plans WHERE date_key = ?`, dateKey)
	plan, err := scanDayPlan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DayPlan{}, ErrNotFound
		}
		return model.DayPlan{}, err
	}
	plan.Events, err = loadEvents(ctx, r.db, dateKey)
	if err != nil {
		return model.DayPlan{}, err
	}
	return plan, nil
}

func (r *SQLiteRepository) ListDayPlans(ctx context.Context, filter DayPlanRange) ([]model.DayPlan, error) {
	query := `SELECT date_key, scratchpad, updated_at FROM day_plans`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.FromKey != "" {
		clauses = append(clauses, "date_key >= ?")
		args = append(args, filter.FromKey)
	}
	if filter.ToKey != "" {
		clauses = append(clauses, "date_key <= ?")
		args = append(args, filter.ToKey)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY date_key ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	out := make([]model.DayPlan, 0)
	for rows.Next() {
		plan, scanErr := scanDayPlan(rows)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		out = append(out, plan)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		events, loadErr := loadEvents(ctx, r.db, out[i].DateKey)
		if loadErr != nil {
			return nil, loadErr
		}
		out[i].Events = events
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteDayPlan(ctx context.Context, dateKey string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if err := deleteEvents(ctx, tx, dateKey); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM day_plans WHERE date_key = ?`, dateKey)
		if err != nil {
			return err
		}
		return checkRowsAffected(res)
	})
}

func (r *SQLiteRepository) SaveEventProgress(ctx context.Context, ev model.Event) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE events SET completed = ? WHERE id = ?`, boolInt(ev.Completed), ev.ID)
		if err != nil {
			return err
		}
		if err := checkRowsAffected(res); err != nil {
			return fmt.Errorf("event %s: %w", ev.ID, err)
		}
		for _, a := range ev.Activities {
			res, err := tx.ExecContext(ctx, `
				UPDATE activities SET completed = ?, skipped = ? WHERE id = ? AND event_id = ?`,
				boolInt(a.Completed), boolInt(a.Skipped), a.ID, ev.ID,
			)
			if err != nil {
				return err
			}
			if err := checkRowsAffected(res); err != nil {
				return fmt.Errorf("activity %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func loadEvents(ctx context.Context, q querier, dateKey string) ([]model.Event, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, title, time_token, duration, is_maybe, completed
		FROM events WHERE date_key = ? ORDER BY position ASC`, dateKey)
	if err != nil {
		return nil, err
	}
	events := make([]model.Event, 0)
	index := make(map[string]int)
	for rows.Next() {
		ev, scanErr := scanEvent(rows)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		index[ev.ID] = len(events)
		events = append(events, ev)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return events, nil
	}

	rows, err = q.QueryContext(ctx, `
		SELECT a.id, a.event_id, a.name, a.completed, a.skipped
		FROM activities a JOIN events e ON e.id = a.event_id
		WHERE e.date_key = ? ORDER BY a.position ASC`, dateKey)
	if err != nil {
		return nil, err
	}
	type activityRef struct{ event, activity int }
	activities := make(map[string]activityRef)
	for rows.Next() {
		var eventID string
		a, scanErr := scanActivity(rows, &eventID)
		if scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		ei, ok := index[eventID]
		if !ok {
			continue
		}
		activities[a.ID] = activityRef{event: ei, activity: len(events[ei].Activities)}
		events[ei].Activities = append(events[ei].Activities, a)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = q.QueryContext(ctx, `
		SELECT d.activity_id, d.body
		FROM activity_details d
		JOIN activities a ON a.id = d.activity_id
		JOIN events e ON e.id = a.event_id
		WHERE e.date_key = ? ORDER BY d.position ASC`, dateKey)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var activityID, body string
		if scanErr := rows.Scan(&activityID, &body); scanErr != nil {
			_ = rows.Close()
			return nil, scanErr
		}
		ref, ok := activities[activityID]
		if !ok {
			continue
		}
		act := &events[ref.event].Activities[ref.activity]
		act.Details = append(act.Details, body)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *SQLiteRepository) SaveReflection(ctx context.Context, in model.Reflection) error {
	completed := in.Completed
	if completed == nil {
		completed = []string{}
	}
	payload, err := json.Marshal(completed)
	if err != nil {
		return fmt.Errorf("encode reflection: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reflections (date_key, completed_json, exciting, saved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date_key) DO UPDATE SET
			completed_json = excluded.completed_json,
			exciting = excluded.exciting,
			saved_at = excluded.saved_at`,
		in.DateKey, string(payload), in.Exciting, mustTime(in.SavedAt),
	)
	return err
}

func (r *SQLiteRepository) GetReflection(ctx context.Context, dateKey string) (model.Reflection, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date_key, completed_json, exciting, saved_at FROM reflections WHERE date_key = ?`, dateKey)
	out, err := scanReflection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reflection{}, ErrNotFound
		}
		return model.Reflection{}, err
	}
	return out, nil
}

func (r *SQLiteRepository) ListReflections(ctx context.Context, filter ReflectionListFilter) ([]model.Reflection, error) {
	query := `SELECT date_key, completed_json, exciting, saved_at FROM reflections ORDER BY date_key DESC`
	args := make([]any, 0, 2)
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Reflection, 0)
	for rows.Next() {
		item, scanErr := scanReflection(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetPhraseBook returns the stored phrases, or the defaults when none were
// ever saved.
func (r *SQLiteRepository) GetPhraseBook(ctx context.Context) (model.PhraseBook, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT body FROM phrases ORDER BY position ASC`)
	if err != nil {
		return model.PhraseBook{}, err
	}
	phrases := make([]string, 0, model.MaxPhrases)
	for rows.Next() {
		var body string
		if scanErr := rows.Scan(&body); scanErr != nil {
			_ = rows.Close()
			return model.PhraseBook{}, scanErr
		}
		phrases = append(phrases, body)
	}
	if err := closeRows(rows); err != nil {
		return model.PhraseBook{}, err
	}
	if len(phrases) == 0 {
		return model.DefaultPhraseBook(), nil
	}

	book := model.PhraseBook{Phrases: phrases, Pinned: -1}
	var raw string
	err = r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, pinnedPhraseSetting).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return model.PhraseBook{}, err
	default:
		if pinned, convErr := strconv.Atoi(raw); convErr == nil && pinned < len(phrases) {
			book.Pinned = pinned
		}
	}
	return book, nil
}

func (r *SQLiteRepository) SavePhraseBook(ctx context.Context, in model.PhraseBook) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM phrases`); err != nil {
			return err
		}
		for i, p := range in.Phrases {
			if _, err := tx.ExecContext(ctx, `INSERT INTO phrases (position, body) VALUES (?, ?)`, i, p); err != nil {
				return fmt.Errorf("insert phrase %d: %w", i, err)
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			pinnedPhraseSetting, strconv.Itoa(in.Pinned),
		)
		return err
	})
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		if limit <= 0 {
			sql += " LIMIT -1"
		}
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	return rows.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDayPlan(s scanner) (model.DayPlan, error) {
	var out model.DayPlan
	var updated string
	if err := s.Scan(&out.DateKey, &out.Scratchpad, &updated); err != nil {
		return model.DayPlan{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return model.DayPlan{}, err
	}
	out.UpdatedAt = updatedAt
	out.Events = make([]model.Event, 0)
	return out, nil
}

func scanEvent(s scanner) (model.Event, error) {
	var out model.Event
	var timeToken, duration sql.NullString
	var maybe, completed int
	if err := s.Scan(&out.ID, &out.Title, &timeToken, &duration, &maybe, &completed); err != nil {
		return model.Event{}, err
	}
	if timeToken.Valid {
		v := timeToken.String
		out.Time = &v
	}
	if duration.Valid {
		v := duration.String
		out.Duration = &v
	}
	out.IsMaybe = maybe == 1
	out.Completed = completed == 1
	out.Activities = make([]model.Activity, 0)
	return out, nil
}

func scanActivity(s scanner, eventID *string) (model.Activity, error) {
	var out model.Activity
	var completed, skipped int
	if err := s.Scan(&out.ID, eventID, &out.Name, &completed, &skipped); err != nil {
		return model.Activity{}, err
	}
	out.Completed = completed == 1
	out.Skipped = skipped == 1
	out.Details = make([]string, 0)
	return out, nil
}

func scanReflection(s scanner) (model.Reflection, error) {
	var out model.Reflection
	var completed, saved string
	if err := s.Scan(&out.DateKey, &completed, &out.Exciting, &saved); err != nil {
		return model.Reflection{}, err
	}
	if err := json.Unmarshal([]byte(completed), &out.Completed); err != nil {
		return model.Reflection{}, fmt.Errorf("decode reflection %s: %w", out.DateKey, err)
	}
	savedAt, err := parseRequiredTime(saved)
	if err != nil {
		return model.Reflection{}, err
	}
	out.SavedAt = savedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
