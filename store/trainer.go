package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/padraicbc/pokedexapi/errs"
	"github.com/padraicbc/pokedexapi/models"
)

// TrainerStore manages trainer profiles and their seen/caught collections.
type TrainerStore struct {
	db *bun.DB
}

// NewTrainer creates a TrainerStore on the given database handle.
func NewTrainer(db *bun.DB) *TrainerStore {
	return &TrainerStore{db: db}
}

// TrainerUpdate is a partial update: nil fields are left untouched.
type TrainerUpdate struct {
	TrainerName *string
	ImgURL      *string
}

// Create makes the trainer profile for username. Each account gets one.
func (s *TrainerStore) Create(ctx context.Context, username, trainerName, imgURL string) (*models.Trainer, error) {
	username = strings.TrimSpace(username)
	trainerName = strings.TrimSpace(trainerName)
	if username == "" {
		return nil, errs.Validation("username is required")
	}
	if trainerName == "" {
		return nil, errs.Validation("trainerName is required")
	}
	if imgURL == "" {
		return nil, errs.Validation("imgUrl is required")
	}

	exists, err := s.db.NewSelect().Model((*models.Trainer)(nil)).
		Where("username = ?", username).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Conflict("trainer for " + username)
	}

	trainer := &models.Trainer{
		Username:     username,
		TrainerName:  trainerName,
		ImgURL:       imgURL,
		CreationDate: time.Now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(trainer).Exec(ctx); err != nil {
		return nil, err
	}

	trainer.Seen = make([]*models.Pokemon, 0)
	trainer.Caught = make([]*models.Pokemon, 0)
	return trainer, nil
}

// Get returns the trainer for username with the seen and caught lists
// expanded to full Pokemon records in insertion order.
func (s *TrainerStore) Get(ctx context.Context, username string) (*models.Trainer, error) {
	trainer := &models.Trainer{}
	err := s.db.NewSelect().Model(trainer).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("trainer")
		}
		return nil, err
	}

	if err := s.expand(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// Update applies the supplied profile fields only.
func (s *TrainerStore) Update(ctx context.Context, username string, upd TrainerUpdate) (*models.Trainer, error) {
	trainer := &models.Trainer{}
	err := s.db.NewSelect().Model(trainer).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("trainer")
		}
		return nil, err
	}

	if upd.TrainerName != nil {
		name := strings.TrimSpace(*upd.TrainerName)
		if name == "" {
			return nil, errs.Validation("trainerName is required")
		}
		trainer.TrainerName = name
	}
	if upd.ImgURL != nil {
		if *upd.ImgURL == "" {
			return nil, errs.Validation("imgUrl is required")
		}
		trainer.ImgURL = *upd.ImgURL
	}

	if _, err := s.db.NewUpdate().Model(trainer).WherePK().Exec(ctx); err != nil {
		return nil, err
	}

	if err := s.expand(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// Delete removes the trainer profile and its marks.
func (s *TrainerStore) Delete(ctx context.Context, username string) error {
	trainer := &models.Trainer{}
	err := s.db.NewSelect().Model(trainer).
		Column("t.id").
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NotFound("trainer")
		}
		return err
	}

	if _, err := s.db.NewDelete().Model((*models.Trainer)(nil)).
		Where("id = ?", trainer.ID).
		Exec(ctx); err != nil {
		return err
	}
	_, err = s.db.NewDelete().Model((*models.TrainerMark)(nil)).
		Where("trainer_id = ?", trainer.ID).
		Exec(ctx)
	return err
}

// MarkPokemon records that the trainer has seen (captured=false) or caught
// (captured=true) the Pokemon. The whole transition is one conflict-upsert on
// the (trainer, pokemon) pair: seeing an unknown Pokemon inserts a seen row,
// catching flips the row to caught, and re-marking is a no-op. A caught
// Pokemon is never demoted back to seen. Returns the expanded trainer.
func (s *TrainerStore) MarkPokemon(ctx context.Context, username string, pokemonID int, captured bool) (*models.Trainer, error) {
	trainer := &models.Trainer{}
	err := s.db.NewSelect().Model(trainer).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFound("trainer")
		}
		return nil, err
	}

	exists, err := s.db.NewSelect().Model((*models.Pokemon)(nil)).
		Where("id = ?", pokemonID).
		Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NotFound("pokemon")
	}

	mark := &models.TrainerMark{
		TrainerID: trainer.ID,
		PokemonID: pokemonID,
		Caught:    captured,
	}
	q := s.db.NewInsert().Model(mark)
	if captured {
		q = q.On("CONFLICT (trainer_id, pokemon_id) DO UPDATE SET caught = EXCLUDED.caught")
	} else {
		q = q.On("CONFLICT (trainer_id, pokemon_id) DO NOTHING")
	}
	if _, err := q.Exec(ctx); err != nil {
		return nil, err
	}

	if err := s.expand(ctx, trainer); err != nil {
		return nil, err
	}
	return trainer, nil
}

// expand loads the seen and caught lists. Marks are joined against the
// catalog, so references to deleted Pokemon silently drop out.
func (s *TrainerStore) expand(ctx context.Context, trainer *models.Trainer) error {
	trainer.Seen = make([]*models.Pokemon, 0)
	trainer.Caught = make([]*models.Pokemon, 0)

	for _, part := range []struct {
		caught bool
		into   *[]*models.Pokemon
	}{
		{false, &trainer.Seen},
		{true, &trainer.Caught},
	} {
		err := s.db.NewSelect().
			Model(part.into).
			Relation("Regions").
			Join("JOIN trainer_marks AS tm ON tm.pokemon_id = p.id").
			Where("tm.trainer_id = ? AND tm.caught = ?", trainer.ID, part.caught).
			OrderExpr("tm.id ASC").
			Scan(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}
