package quizzes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"codeberg.org/wexam/server/internal/quizgen"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createTableSQL)
	return err
}

// checks a save request before it reaches the database; questions obey the
// same invariants as freshly generated ones
func ValidateCreate(req CreateQuizRequest) error {
	if err := quizgen.CheckQuestions(req.Questions); err != nil {
		return err
	}

	switch quizgen.Difficulty(strings.ToLower(req.Difficulty)) {
	case quizgen.DifficultyEasy, quizgen.DifficultyMedium, quizgen.DifficultyHard, quizgen.DifficultyHOTS:
	default:
		return &quizgen.ValidationError{Field: "difficulty", Message: "Invalid difficulty level."}
	}

	switch quizgen.QuestionType(strings.ToLower(req.Type)) {
	case quizgen.TypeMCQ, quizgen.TypeShort, quizgen.TypeLong, quizgen.TypeMixed:
	default:
		return &quizgen.ValidationError{Field: "type", Message: "Invalid question type."}
	}

	return nil
}

func (r *Repository) Create(ctx context.Context, ownerID string, req CreateQuizRequest) (*Quiz, error) {
	quizgen.NormalizeOptions(req.Questions)

	questions, err := json.Marshal(req.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}

	row := r.db.QueryRow(
		ctx,
		queryCreate,
		ownerID,
		req.Class,
		req.Subject,
		req.Chapter,
		strings.ToLower(req.Difficulty),
		strings.ToLower(req.Type),
		string(questions),
		len(req.Questions),
	)

	return scanQuiz(row)
}

// lists the owner's quizzes newest first along with the total count
func (r *Repository) List(ctx context.Context, ownerID string, limit, offset int) ([]Quiz, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, queryCountByOwner, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, queryList, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Quiz{}
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, 0, err
		}

		list = append(list, *quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *Repository) Get(ctx context.Context, quizID, ownerID string) (*Quiz, error) {
	quiz, err := scanQuiz(r.db.QueryRow(ctx, queryGet, quizID, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrQuizNotFound
	}

	return quiz, err
}

func (r *Repository) Delete(ctx context.Context, quizID, ownerID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, quizID, ownerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrQuizNotFound
	}

	return nil
}

func scanQuiz(row pgx.Row) (*Quiz, error) {
	var (
		quiz      Quiz
		questions []byte
	)

	err := row.Scan(
		&quiz.ID,
		&quiz.OwnerID,
		&quiz.Class,
		&quiz.Subject,
		&quiz.Chapter,
		&quiz.Difficulty,
		&quiz.Type,
		&questions,
		&quiz.TotalQuestions,
		&quiz.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	return &quiz, nil
}
