package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KoustavBera/Odoo25/internal/question/models"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
)

// PostgresQuestionStore persists question aggregates across four tables:
// questions, answers (FK, cascade), and one vote table per entity with a
// (entity, user) primary key enforcing at most one vote row per user.
//
// Mutate serializes concurrent writers on the question row via
// SELECT ... FOR UPDATE, then rewrites the aggregate's mutable parts inside
// the same transaction.
type PostgresQuestionStore struct {
	pool *pgxpool.Pool
}

func NewPostgresQuestionStore(pool *pgxpool.Pool) *PostgresQuestionStore {
	return &PostgresQuestionStore{pool: pool}
}

// Migrate creates the question tables if they do not exist.
func (s *PostgresQuestionStore) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS questions (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			author_id UUID NOT NULL,
			author_name TEXT NOT NULL,
			no_of_answers INT NOT NULL DEFAULT 0,
			asked_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_asked_on ON questions(asked_on DESC);`,
		`CREATE TABLE IF NOT EXISTS answers (
			id UUID PRIMARY KEY,
			question_id UUID NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			body TEXT NOT NULL,
			author_id UUID NOT NULL,
			author_name TEXT NOT NULL,
			answered_on TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id, answered_on);`,
		`CREATE TABLE IF NOT EXISTS question_votes (
			question_id UUID NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			direction TEXT NOT NULL CHECK (direction IN ('up', 'down')),
			PRIMARY KEY (question_id, user_id)
		);`,
		`CREATE TABLE IF NOT EXISTS answer_votes (
			answer_id UUID NOT NULL REFERENCES answers(id) ON DELETE CASCADE,
			user_id TEXT NOT NULL,
			direction TEXT NOT NULL CHECK (direction IN ('up', 'down')),
			PRIMARY KEY (answer_id, user_id)
		);`,
	}

	for _, q := range queries {
		if _, err := s.pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("migrate questions: %w", err)
		}
	}
	return nil
}

func (s *PostgresQuestionStore) Save(ctx context.Context, question models.Question) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := persistAggregate(ctx, tx, question); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresQuestionStore) FindByID(ctx context.Context, questionID id.QuestionID) (models.Question, error) {
	return loadAggregate(ctx, s.pool, questionID, false)
}

func (s *PostgresQuestionStore) FindByAnswerID(ctx context.Context, answerID id.AnswerID) (models.Question, error) {
	questionID, err := resolveAnswer(ctx, s.pool, answerID)
	if err != nil {
		return models.Question{}, err
	}
	return loadAggregate(ctx, s.pool, questionID, false)
}

func (s *PostgresQuestionStore) List(ctx context.Context) ([]models.Question, error) {
	const query = `SELECT id FROM questions ORDER BY asked_on DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var ids []id.QuestionID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question id: %w", err)
		}
		questionID, err := id.ParseQuestionID(raw)
		if err != nil {
			return nil, fmt.Errorf("stored question id invalid: %w", err)
		}
		ids = append(ids, questionID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	out := make([]models.Question, 0, len(ids))
	for _, questionID := range ids {
		q, err := loadAggregate(ctx, s.pool, questionID, false)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				continue // deleted between the two queries
			}
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *PostgresQuestionStore) Delete(ctx context.Context, questionID id.QuestionID) error {
	// Answers and votes go with the question via ON DELETE CASCADE.
	tag, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1;`, questionID.String())
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresQuestionStore) Mutate(ctx context.Context, questionID id.QuestionID, fn func(*models.Question) error) (models.Question, error) {
	return s.mutate(ctx, questionID, fn)
}

func (s *PostgresQuestionStore) MutateByAnswerID(ctx context.Context, answerID id.AnswerID, fn func(*models.Question) error) (models.Question, error) {
	questionID, err := resolveAnswer(ctx, s.pool, answerID)
	if err != nil {
		return models.Question{}, err
	}
	return s.mutate(ctx, questionID, fn)
}

func (s *PostgresQuestionStore) mutate(ctx context.Context, questionID id.QuestionID, fn func(*models.Question) error) (models.Question, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Question{}, fmt.Errorf("begin mutate: %w", err)
	}
	defer tx.Rollback(ctx)

	question, err := loadAggregate(ctx, tx, questionID, true)
	if err != nil {
		return models.Question{}, err
	}

	if err := fn(&question); err != nil {
		return models.Question{}, err
	}

	if err := persistAggregate(ctx, tx, question); err != nil {
		return models.Question{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Question{}, fmt.Errorf("commit mutate: %w", err)
	}
	return question, nil
}

// dbConn covers both the pool and an open transaction.
type dbConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func loadAggregate(ctx context.Context, db dbConn, questionID id.QuestionID, forUpdate bool) (models.Question, error) {
	query := `
	SELECT id, title, description, tags, author_id, author_name, no_of_answers, asked_on
	FROM questions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		out       models.Question
		rawID     string
		rawAuthor string
	)
	err := db.QueryRow(ctx, query, questionID.String()).Scan(
		&rawID,
		&out.Title,
		&out.Description,
		&out.Tags,
		&rawAuthor,
		&out.AuthorName,
		&out.NoOfAnswers,
		&out.AskedOn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Question{}, sentinel.ErrNotFound
		}
		return models.Question{}, fmt.Errorf("load question: %w", err)
	}

	if out.ID, err = id.ParseQuestionID(rawID); err != nil {
		return models.Question{}, fmt.Errorf("stored question id invalid: %w", err)
	}
	if out.AuthorID, err = id.ParseUserID(rawAuthor); err != nil {
		return models.Question{}, fmt.Errorf("stored author id invalid: %w", err)
	}

	if err := loadAnswers(ctx, db, &out); err != nil {
		return models.Question{}, err
	}
	if err := loadVotes(ctx, db, &out); err != nil {
		return models.Question{}, err
	}
	return out, nil
}

func loadAnswers(ctx context.Context, db dbConn, q *models.Question) error {
	const query = `
	SELECT id, body, author_id, author_name, answered_on
	FROM answers WHERE question_id = $1 ORDER BY answered_on, id;`

	rows, err := db.Query(ctx, query, q.ID.String())
	if err != nil {
		return fmt.Errorf("load answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a         models.Answer
			rawID     string
			rawAuthor string
		)
		if err := rows.Scan(&rawID, &a.Body, &rawAuthor, &a.AuthorName, &a.AnsweredOn); err != nil {
			return fmt.Errorf("scan answer: %w", err)
		}
		if a.ID, err = id.ParseAnswerID(rawID); err != nil {
			return fmt.Errorf("stored answer id invalid: %w", err)
		}
		if a.AuthorID, err = id.ParseUserID(rawAuthor); err != nil {
			return fmt.Errorf("stored answer author invalid: %w", err)
		}
		q.Answers = append(q.Answers, a)
	}
	return rows.Err()
}

func loadVotes(ctx context.Context, db dbConn, q *models.Question) error {
	rows, err := db.Query(ctx,
		`SELECT user_id, direction FROM question_votes WHERE question_id = $1;`, q.ID.String())
	if err != nil {
		return fmt.Errorf("load question votes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID, direction string
		if err := rows.Scan(&userID, &direction); err != nil {
			return fmt.Errorf("scan question vote: %w", err)
		}
		if direction == "up" {
			q.UpVote = append(q.UpVote, userID)
		} else {
			q.DownVote = append(q.DownVote, userID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range q.Answers {
		a := &q.Answers[i]
		voteRows, err := db.Query(ctx,
			`SELECT user_id, direction FROM answer_votes WHERE answer_id = $1;`, a.ID.String())
		if err != nil {
			return fmt.Errorf("load answer votes: %w", err)
		}
		for voteRows.Next() {
			var userID, direction string
			if err := voteRows.Scan(&userID, &direction); err != nil {
				voteRows.Close()
				return fmt.Errorf("scan answer vote: %w", err)
			}
			if direction == "up" {
				a.UpVote = append(a.UpVote, userID)
			} else {
				a.DownVote = append(a.DownVote, userID)
			}
		}
		err = voteRows.Err()
		voteRows.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// persistAggregate rewrites the mutable parts of the aggregate: the question
// row, any new answers, and both vote ledgers. Callers hold the row lock.
func persistAggregate(ctx context.Context, db dbConn, q models.Question) error {
	const upsertQuestion = `
	INSERT INTO questions (id, title, description, tags, author_id, author_name, no_of_answers, asked_on)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET title = EXCLUDED.title,
	    description = EXCLUDED.description,
	    tags = EXCLUDED.tags,
	    no_of_answers = EXCLUDED.no_of_answers;`

	if _, err := db.Exec(ctx, upsertQuestion,
		q.ID.String(), q.Title, q.Description, q.Tags,
		q.AuthorID.String(), q.AuthorName, q.NoOfAnswers, q.AskedOn,
	); err != nil {
		return fmt.Errorf("persist question: %w", err)
	}

	const upsertAnswer = `
	INSERT INTO answers (id, question_id, body, author_id, author_name, answered_on)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO NOTHING;`
	for i := range q.Answers {
		a := q.Answers[i]
		if _, err := db.Exec(ctx, upsertAnswer,
			a.ID.String(), q.ID.String(), a.Body, a.AuthorID.String(), a.AuthorName, a.AnsweredOn,
		); err != nil {
			return fmt.Errorf("persist answer: %w", err)
		}
	}

	if _, err := db.Exec(ctx,
		`DELETE FROM question_votes WHERE question_id = $1;`, q.ID.String()); err != nil {
		return fmt.Errorf("clear question votes: %w", err)
	}
	if err := insertVotes(ctx, db,
		`INSERT INTO question_votes (question_id, user_id, direction) VALUES ($1, $2, $3);`,
		q.ID.String(), q.UpVote, q.DownVote); err != nil {
		return err
	}

	for i := range q.Answers {
		a := q.Answers[i]
		if _, err := db.Exec(ctx,
			`DELETE FROM answer_votes WHERE answer_id = $1;`, a.ID.String()); err != nil {
			return fmt.Errorf("clear answer votes: %w", err)
		}
		if err := insertVotes(ctx, db,
			`INSERT INTO answer_votes (answer_id, user_id, direction) VALUES ($1, $2, $3);`,
			a.ID.String(), a.UpVote, a.DownVote); err != nil {
			return err
		}
	}
	return nil
}

func insertVotes(ctx context.Context, db dbConn, query, entityID string, up, down []string) error {
	for _, userID := range up {
		if _, err := db.Exec(ctx, query, entityID, userID, "up"); err != nil {
			return fmt.Errorf("persist vote: %w", err)
		}
	}
	for _, userID := range down {
		if _, err := db.Exec(ctx, query, entityID, userID, "down"); err != nil {
			return fmt.Errorf("persist vote: %w", err)
		}
	}
	return nil
}

func resolveAnswer(ctx context.Context, db dbConn, answerID id.AnswerID) (id.QuestionID, error) {
	var raw string
	err := db.QueryRow(ctx,
		`SELECT question_id FROM answers WHERE id = $1;`, answerID.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return id.QuestionID{}, sentinel.ErrNotFound
		}
		return id.QuestionID{}, fmt.Errorf("resolve answer: %w", err)
	}
	return id.ParseQuestionID(raw)
}
